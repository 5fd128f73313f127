/*
Copyright © 2025 Valentyn Solomko <valentyn.solomko@gmail.com>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check that every configured client can reach its backend",
	Long: `Build the client pool from the current configuration and probe each client.

Exits with an error when at least one client is unavailable.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		ctx := context.Background()
		pool, err := buildPool(ctx, cfg)
		if err != nil {
			return err
		}
		defer pool.Close()

		timeout := cfg.Timeout
		if timeout <= 0 || timeout > 30*time.Second {
			timeout = 30 * time.Second
		}

		failed := 0
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "#\tBACKEND\tMODEL\tSTATUS")
		for i, g := range pool.All() {
			checkCtx, cancel := context.WithTimeout(ctx, timeout)
			status := "ok"
			if err := g.IsAvailable(checkCtx); err != nil {
				status = err.Error()
				failed++
			}
			cancel()
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", i+1, g.Name(), modelOf(g), status)
		}
		if err := w.Flush(); err != nil {
			return err
		}

		if failed > 0 {
			return fmt.Errorf("%d of %d clients unavailable", failed, pool.Len())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

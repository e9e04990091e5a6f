package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/btcspv/spvwallet/addressbook"
	"github.com/btcspv/spvwallet/manager"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Connect to configured peers and run the SPV sync loop until interrupted",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(flagPeer) == 0 {
			return fmt.Errorf("sync requires at least one --peer")
		}

		net, _, st, err := openWallet(flagDataDir, flagNetwork)
		if err != nil {
			return err
		}

		book := addressbook.New()
		for _, s := range st.Scripts() {
			book.Add(s)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		mgr := manager.New(net, book, st)

		go mgr.Run(ctx)

		for _, addr := range flagPeer {
			if err := mgr.Connect(ctx, addr); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "connecting to %s: %v\n", addr, err)
				continue
			}

			fmt.Fprintf(cmd.OutOrStdout(), "connected to %s\n", addr)
		}

		<-ctx.Done()

		if err := st.Save(); err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), "sync stopped, wallet state saved")

		return nil
	},
}

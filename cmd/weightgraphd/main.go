/*
 * weightgraph
 *
 * Copyright 2016 Matthias Ladkau. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"devt.de/krotik/common/logutil"
	"devt.de/krotik/weightgraph/agent"
	"devt.de/krotik/weightgraph/bootstrap"
	"devt.de/krotik/weightgraph/chain"
	"devt.de/krotik/weightgraph/config"
	"devt.de/krotik/weightgraph/graph"
	"devt.de/krotik/weightgraph/protocol"
	"devt.de/krotik/weightgraph/query"
)

var mainLog = logutil.GetLogger("main")

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var oneShotCommand string
var configFile string

var rootCmd = &cobra.Command{
	Use:   "weightgraphd",
	Short: "A single-node weightgraph peer",
	Long: `weightgraphd runs one peer of the weightgraph network: an in-memory
property graph, a stake-weighted replicated block log, and a gossip
channel that keeps that log in sync with other peers.`,
	RunE: run,
}

func init() {
	rootCmd.Flags().StringVarP(&oneShotCommand, "command", "c", "", "run a single query command and exit instead of starting the REPL")
	rootCmd.Flags().StringVar(&configFile, "config", "", "path to a config file (defaults to in-memory defaults)")

	for n := 1; n <= 3; n++ {
		rootCmd.Flags().String(fmt.Sprintf("username%d", n), "", "bootstrap username to pre-insert")
		rootCmd.Flags().String(fmt.Sprintf("key%d", n), "", "public key of the bootstrap user to pre-insert")
	}
}

func run(cmd *cobra.Command, args []string) error {
	if configFile != "" {
		if err := config.LoadConfigFile(configFile); err != nil {
			return err
		}
	} else {
		config.LoadDefaultConfig()
	}

	gm := graph.NewManager()
	registry := agent.NewRegistry()
	ch := chain.New(registry)
	ex := query.NewExecutor(gm, registry, ch)

	mainLog.Info("bootstrapping node, validator key ", ch.PublicKey())
	bootstrap.Init(ex)
	bootstrap.ParseAccountFlags(gm, func(name string) (string, bool) {
		v, err := cmd.Flags().GetString(name)
		return v, err == nil && v != ""
	})

	if oneShotCommand != "" {
		return runOnce(ex, oneShotCommand)
	}

	hub := protocol.NewHub(config.Int(config.SeenCacheTTL))
	localPeer := protocol.PeerID(uuid.New().String())
	proto := protocol.New(localPeer, hub, ch)

	if addr := config.Str(config.ListenAddress); addr != "" {
		bound, err := protocol.Listen(addr, hub)
		if err != nil {
			mainLog.Error("could not start gossip listener: ", err)
		} else {
			mainLog.Info("gossip listener on ", bound)
		}
	}

	for _, peerAddr := range config.PeerList() {
		if err := protocol.Dial(peerAddr, localPeer, hub); err != nil {
			mainLog.Error("could not dial peer ", peerAddr, ": ", err)
		}
	}

	runREPL(ex, proto, hub)
	return nil
}

func runOnce(ex *query.Executor, cmdText string) error {
	result, err := execute(ex, cmdText)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}
	return printResult(result)
}

/*
runREPL is the single-threaded cooperative event loop: exactly one of
the stdin reader or the network-event stream is serviced per iteration,
and Tick runs after each to publish any chain growth, per §5.
*/
func runREPL(ex *query.Executor, proto *protocol.Protocol, hub *protocol.Hub) {
	lines := make(chan string)

	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		close(lines)
	}()

	for {
		select {
		case line, ok := <-lines:
			if !ok {
				return
			}
			if result, err := execute(ex, line); err != nil {
				fmt.Fprintln(os.Stderr, err)
			} else if err := printResult(result); err != nil {
				fmt.Fprintln(os.Stderr, err)
			}

		case ev, ok := <-hub.Out:
			if !ok {
				return
			}
			proto.HandleEvent(ev)
		}

		proto.Tick()
	}
}

func execute(ex *query.Executor, line string) ([]map[string]string, error) {
	cmd, err := query.Parse(line)
	if err != nil {
		return nil, err
	}
	return ex.Execute(cmd)
}

func printResult(result []map[string]string) error {
	out, err := json.Marshal(result)
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

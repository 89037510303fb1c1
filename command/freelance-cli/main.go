// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"
	"path"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/freelanced/command/freelance-cli/configuration"
)

type metadata struct {
	file    string
	config  *configuration.Configuration
	save    bool
	verbose bool
	e       io.Writer
	w       io.Writer
}

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

func main() {
	app := newApp()
	err := app.Run(os.Args)
	if nil != err {
		fmt.Fprintf(app.ErrWriter, "terminated with error: %s\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {

	app := cli.NewApp()
	app.Name = "freelance-cli"
	app.Usage = "freelance marketplace client"
	app.Version = version
	app.HideVersion = true

	app.Writer = os.Stdout
	app.ErrWriter = os.Stderr

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
		cli.StringFlag{
			Name:  "config, c",
			Value: "",
			Usage: " configuration `FILE` [default: $XDG_CONFIG_HOME/freelance-cli/freelance-cli.json]",
		},
		cli.StringFlag{
			Name:  "identity, i",
			Value: "",
			Usage: " identity `NAME` [default identity]",
		},
		cli.StringFlag{
			Name:   "password, p",
			Value:  "",
			Usage:  " identity `PASSWORD`",
			EnvVar: "FREELANCE_CLI_PASSWORD",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:      "setup",
			Usage:     "Initialise freelance-cli configuration",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "connect, c",
					Value: "",
					Usage: "*freelanced host/IP and port, `HOST:PORT`",
				},
				cli.StringFlag{
					Name:  "description, d",
					Value: "",
					Usage: "*identity description `STRING`",
				},
				cli.StringFlag{
					Name:  "seed, s",
					Value: "",
					Usage: " using existing hex seed `SEED`",
				},
				cli.StringFlag{
					Name:  "publisher",
					Value: "",
					Usage: " event publisher `HOST:PORT`",
				},
				cli.StringFlag{
					Name:  "publisher-key",
					Value: "",
					Usage: " publisher public key `FILE`",
				},
			},
			Action: runSetup,
		},
		{
			Name:      "add",
			Usage:     "add a new identity to config file",
			ArgsUsage: "\n   (* = required, + = select one)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "description, d",
					Value: "",
					Usage: "*identity description `STRING`",
				},
				cli.StringFlag{
					Name:  "seed, s",
					Value: "",
					Usage: "+using existing hex seed `SEED`",
				},
				cli.BoolFlag{
					Name:  "new, n",
					Usage: "+generate a new seed",
				},
				cli.StringFlag{
					Name:  "account, a",
					Value: "",
					Usage: "+receive only `ACCOUNT`",
				},
			},
			Action: runAdd,
		},
		{
			Name:   "info",
			Usage:  "display freelance-cli identities",
			Action: runInfo,
		},
		{
			Name:   "nodeinfo",
			Usage:  "display freelanced status",
			Action: runNodeInfo,
		},
		{
			Name:      "register",
			Usage:     "register the current identity",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "name, n",
					Value: "",
					Usage: "*display `NAME`",
				},
				cli.StringFlag{
					Name:  "contact, c",
					Value: "",
					Usage: " contact `DETAILS`",
				},
				cli.BoolFlag{
					Name:  "freelancer, f",
					Usage: " register as a freelancer instead of a client",
				},
			},
			Action: runRegister,
		},
		{
			Name:      "user",
			Usage:     "display a user profile",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "account, a",
					Value: "",
					Usage: " identity name or `ACCOUNT` default is global identity",
				},
			},
			Action: runUser,
		},
		{
			Name:      "create-job",
			Usage:     "post a new job",
			ArgsUsage: "\n   (* = required)",
			Flags:     jobFlags(false),
			Action:    runCreateJob,
		},
		{
			Name:      "edit-job",
			Usage:     "replace the details of an open job",
			ArgsUsage: "\n   (* = required)",
			Flags:     jobFlags(true),
			Action:    runEditJob,
		},
		{
			Name:      "close-job",
			Usage:     "stop a job taking applications",
			ArgsUsage: "\n   (* = required)",
			Flags:     []cli.Flag{jobIDFlag()},
			Action:    runCloseJob,
		},
		{
			Name:      "apply",
			Usage:     "apply for a job",
			ArgsUsage: "\n   (* = required)",
			Flags:     []cli.Flag{jobIDFlag()},
			Action:    runApply,
		},
		{
			Name:      "select",
			Usage:     "select a freelancer from the applicants",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				jobIDFlag(),
				cli.StringFlag{
					Name:  "freelancer, f",
					Value: "",
					Usage: "*identity name or `ACCOUNT` of the applicant",
				},
			},
			Action: runSelect,
		},
		{
			Name:      "job",
			Usage:     "display a job",
			ArgsUsage: "\n   (* = required)",
			Flags:     []cli.Flag{jobIDFlag()},
			Action:    runJob,
		},
		{
			Name:   "jobs",
			Usage:  "list the open jobs",
			Action: runJobs,
		},
		{
			Name:      "applications",
			Usage:     "list the applicants of a job",
			ArgsUsage: "\n   (* = required)",
			Flags:     []cli.Flag{jobIDFlag()},
			Action:    runApplications,
		},
		{
			Name:      "fund",
			Usage:     "approve custody and escrow a milestone payment",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				jobIDFlag(),
				cli.Uint64Flag{
					Name:  "amount, a",
					Value: 0,
					Usage: "*token `AMOUNT` to escrow",
				},
				cli.StringFlag{
					Name:  "description, d",
					Value: "",
					Usage: " milestone description `STRING`",
				},
				cli.BoolFlag{
					Name:  "no-approve",
					Usage: " do not approve the custody account first",
				},
			},
			Action: runFund,
		},
		{
			Name:      "release",
			Usage:     "release a milestone payment to the selected freelancer",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "milestone, m",
					Value: "",
					Usage: "*milestone `ID`",
				},
			},
			Action: runRelease,
		},
		{
			Name:      "milestones",
			Usage:     "list the milestones of a job",
			ArgsUsage: "\n   (* = required)",
			Flags:     []cli.Flag{jobIDFlag()},
			Action:    runMilestones,
		},
		{
			Name:      "balance",
			Usage:     "display token balance and escrowed amount",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "owner, o",
					Value: "",
					Usage: " identity name or `ACCOUNT` default is global identity",
				},
			},
			Action: runBalance,
		},
		{
			Name:      "approve",
			Usage:     "set the allowance of a spender",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "spender, s",
					Value: "",
					Usage: "*identity name or `ACCOUNT`",
				},
				cli.Uint64Flag{
					Name:  "amount, a",
					Value: 0,
					Usage: "*allowance `AMOUNT`",
				},
			},
			Action: runApprove,
		},
		{
			Name:      "transfer",
			Usage:     "send tokens to another account",
			ArgsUsage: "\n   (* = required)",
			Flags:     amountFlags("receiver"),
			Action:    runTransfer,
		},
		{
			Name:      "mint",
			Usage:     "create tokens, current identity must be the minter",
			ArgsUsage: "\n   (* = required)",
			Flags:     amountFlags("receiver"),
			Action:    runMint,
		},
		{
			Name:   "token",
			Usage:  "display stablecoin details",
			Action: runToken,
		},
		{
			Name:      "events",
			Usage:     "list ledger events",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.Uint64Flag{
					Name:  "start, s",
					Value: 0,
					Usage: " start at event `SEQUENCE`",
				},
				cli.IntFlag{
					Name:  "count, c",
					Value: 20,
					Usage: " maximum records to output `COUNT`",
				},
			},
			Action: runEvents,
		},
		{
			Name:      "watch",
			Usage:     "print events as they are published",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "filter, f",
					Value: "",
					Usage: " only events whose name starts with `PREFIX`",
				},
				cli.IntFlag{
					Name:  "count, c",
					Value: 0,
					Usage: " stop after `COUNT` events, 0 for no limit",
				},
			},
			Action: runWatch,
		},
		{
			Name:  "version",
			Usage: "display freelance-cli version",
			Action: func(c *cli.Context) error {
				fmt.Fprintf(c.App.Writer, "%s\n", version)
				return nil
			},
		},
	}

	// read the configuration
	app.Before = func(c *cli.Context) error {

		e := c.App.ErrWriter
		w := c.App.Writer
		verbose := c.GlobalBool("verbose")

		// to suppress reading config file if certain commands
		command := c.Args().Get(0)
		switch command {
		case "", "version", "help", "h":
			return nil
		}

		file, err := configurationFile(c.GlobalString("config"), app.Name)
		if nil != err {
			return err
		}

		if verbose {
			fmt.Fprintf(e, "file: %q\n", file)
		}

		if "setup" == command {
			// do not run setup if there is an existing configuration
			if _, err := checkFileExists(file); nil == err {
				return fmt.Errorf("not overwriting existing configuration: %q", file)
			}

			c.App.Metadata["config"] = &metadata{
				file:    file,
				save:    false,
				verbose: verbose,
				e:       e,
				w:       w,
			}
			return nil
		}

		if verbose {
			fmt.Fprintf(e, "reading config file: %s\n", file)
		}

		config, err := configuration.Load(file)
		if nil != err {
			return err
		}

		c.App.Metadata["config"] = &metadata{
			file:    file,
			config:  config,
			save:    false,
			verbose: verbose,
			e:       e,
			w:       w,
		}
		return nil
	}

	// update the configuration if required
	app.After = func(c *cli.Context) error {
		e := c.App.ErrWriter
		m, ok := c.App.Metadata["config"].(*metadata)
		if !ok {
			return nil
		}
		if m.save {
			if m.verbose {
				fmt.Fprintf(e, "updating config file: %s\n", m.file)
			}
			return configuration.Save(m.file, m.config)
		}
		return nil
	}

	return app
}

// explicit file or the XDG location
func configurationFile(file string, name string) (string, error) {
	if "" != file {
		return file, nil
	}

	p := os.Getenv("XDG_CONFIG_HOME")
	if "" == p {
		return "", fmt.Errorf("XDG_CONFIG_HOME environment is not set")
	}
	dir, err := checkFileExists(p)
	if nil != err {
		return "", err
	}
	if !dir {
		return "", fmt.Errorf("not a directory: %q", p)
	}
	return path.Join(p, name, name+".json"), nil
}

func jobIDFlag() cli.Flag {
	return cli.StringFlag{
		Name:  "job, j",
		Value: "",
		Usage: "*job `ID`",
	}
}

func jobFlags(edit bool) []cli.Flag {
	flags := []cli.Flag{
		cli.StringFlag{
			Name:  "title, t",
			Value: "",
			Usage: "*job `TITLE`",
		},
		cli.StringFlag{
			Name:  "description, d",
			Value: "",
			Usage: " job `DESCRIPTION`",
		},
		cli.Uint64Flag{
			Name:  "payment, a",
			Value: 0,
			Usage: " offered payment `AMOUNT`",
		},
		cli.StringFlag{
			Name:  "experience, e",
			Value: "",
			Usage: " required `EXPERIENCE` level",
		},
	}
	if edit {
		flags = append([]cli.Flag{jobIDFlag()}, flags...)
	}
	return flags
}

func amountFlags(who string) []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{
			Name:  who + ", r",
			Value: "",
			Usage: "*identity name or `ACCOUNT`",
		},
		cli.Uint64Flag{
			Name:  "amount, a",
			Value: 0,
			Usage: "*token `AMOUNT`",
		},
	}
}

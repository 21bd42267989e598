package main

import (
	"errors"
	"io"
	"os"
	"strings"

	"saral-hr/internal/bulkattendance"
	"saral-hr/internal/rpc"

	"github.com/spf13/cobra"
)

type clientFactory func(apiURL, token string) (bulkattendance.RemoteProcedureClient, error)

func defaultClientFactory(apiURL, token string) (bulkattendance.RemoteProcedureClient, error) {
	return rpc.NewHTTPClient(apiURL, token)
}

type rootOptions struct {
	APIURL string
	Token  string

	newClient clientFactory
	out       io.Writer
}

func (o *rootOptions) client() (bulkattendance.RemoteProcedureClient, error) {
	if strings.TrimSpace(o.APIURL) == "" {
		return nil, errors.New("--api or SARAL_API_URL is required")
	}
	if strings.TrimSpace(o.Token) == "" {
		return nil, errors.New("--token or SARAL_TOKEN is required")
	}
	return o.newClient(o.APIURL, o.Token)
}

func newRootCmd(newClient clientFactory, out io.Writer) *cobra.Command {
	opts := &rootOptions{newClient: newClient, out: out}

	cmd := &cobra.Command{
		Use:           "attendance-grid",
		Short:         "Bulk attendance entry grid for one employee and month",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetOut(out)
	cmd.PersistentFlags().StringVar(&opts.APIURL, "api", os.Getenv("SARAL_API_URL"), "API base URL")
	cmd.PersistentFlags().StringVar(&opts.Token, "token", os.Getenv("SARAL_TOKEN"), "bearer token")

	cmd.AddCommand(newEmployeesCmd(opts))
	cmd.AddCommand(newShowCmd(opts))
	cmd.AddCommand(newMarkCmd(opts))
	cmd.AddCommand(newCalendarCmd(opts))
	cmd.AddCommand(newEligibilityCmd(opts))
	return cmd
}

package cli

// cmd/kerictl/cli/route.go — thin CLI wrapper for registering and
// test-dispatching routing.Router templates, without standing up any
// network transport.

import (
	"errors"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"keri/cesr"
	"keri/eventing"
	"keri/routing"
	"keri/serder"
)

func routeBail(err error) {
	if err != nil {
		log.Fatalf("route: %v", err)
	}
}

type printingHandler struct{}

func (printingHandler) ProcessReply(ser *serder.Serder, saider *cesr.Saider, route string, cigars []*cesr.Cigar, tsgs []*cesr.Siger, params map[string]string) error {
	fmt.Printf("matched route=%s said=%s params=%v\n", route, ser.Said(), params)
	return nil
}

func routeTestHandler(cmd *cobra.Command, args []string) {
	template, _ := cmd.Flags().GetString("template")
	path, _ := cmd.Flags().GetString("path")
	if template == "" || path == "" {
		_ = cmd.Usage()
		routeBail(errors.New("--template and --path are required"))
	}

	r := routing.NewRouter()
	routeBail(r.AddRoute(template, printingHandler{}, ""))

	ser, err := eventing.NewQueryEventBuilder(path, map[string]any{}, "2021-01-01T00:00:00.000000+00:00").Build()
	routeBail(err)

	routeBail(r.Dispatch(ser, nil, nil, nil))
}

var routeCmd = &cobra.Command{
	Use:   "route",
	Short: "route template registration/dispatch testing",
}

var routeTestCmd = &cobra.Command{
	Use:   "test",
	Short: "register a template and dispatch a synthetic query against it",
	Run:   routeTestHandler,
}

func init() {
	routeTestCmd.Flags().String("template", "", "route template, e.g. /logs/{aid} [required]")
	routeTestCmd.Flags().String("path", "", "concrete path to dispatch, e.g. /logs/EabcAID [required]")

	routeCmd.AddCommand(routeTestCmd)
}

// RouteCmd exposes route CLI operations.
var RouteCmd = routeCmd

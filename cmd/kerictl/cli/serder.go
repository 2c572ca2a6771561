package cli

// cmd/kerictl/cli/serder.go — thin CLI wrapper over serder parsing and SAID
// derivation/verification.

import (
	"errors"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"keri/cesr"
	"keri/serder"
)

func serderBail(err error) {
	if err != nil {
		log.Fatalf("serder: %v", err)
	}
}

func serderParseHandler(cmd *cobra.Command, args []string) {
	in, _ := cmd.Flags().GetString("in")
	raw, err := readInput(in)
	serderBail(err)

	ser, err := serder.FromRaw(raw)
	serderBail(err)
	fmt.Printf("proto=%s kind=%s version=%s ilk=%s pre=%s said=%s\n",
		ser.Proto(), ser.Kind(), ser.Version(), ser.Ilk(), ser.Pre(), ser.Said())
}

func serderVerifyHandler(cmd *cobra.Command, args []string) {
	in, _ := cmd.Flags().GetString("in")
	code, _ := cmd.Flags().GetString("code")
	raw, err := readInput(in)
	serderBail(err)

	ser, err := serder.FromRaw(raw)
	serderBail(err)

	ok, err := serder.Verify(ser.Sad(), ser.Kind(), ser.Version(), code)
	serderBail(err)
	if !ok {
		serderBail(errors.New("SAID does not verify"))
	}
	fmt.Println("ok")
}

var serderCmd = &cobra.Command{
	Use:   "serder",
	Short: "self-addressing event serialization operations",
}

var serderParseCmd = &cobra.Command{
	Use:   "parse",
	Short: "parse a raw event and print its version/ilk/said",
	Run:   serderParseHandler,
}

var serderVerifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "re-derive a raw event's said field and check it matches",
	Run:   serderVerifyHandler,
}

func init() {
	serderParseCmd.Flags().String("in", "-", "input file, or - for stdin")

	serderVerifyCmd.Flags().String("in", "-", "input file, or - for stdin")
	serderVerifyCmd.Flags().String("code", cesr.CodeBlake3_256.Code, "digest code the said field was derived with")

	serderCmd.AddCommand(serderParseCmd, serderVerifyCmd)
}

// SerderCmd exposes serder CLI operations.
var SerderCmd = serderCmd

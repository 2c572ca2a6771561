package cli

// cmd/kerictl/cli/matter.go — thin CLI wrapper over the cesr primitive
// codec.
// ----------------------------------------------------------------------------
// Layout
//   1. Controllers – one per sub-command, thin and validated.
//   2. CLI definitions – commands + flags.
//   3. Consolidated route export, ready for import in root CLI.
// ----------------------------------------------------------------------------

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"keri/cesr"
)

// ---------------------------------------------------------------------------
// Controllers
// ---------------------------------------------------------------------------

func matterBail(err error) {
	if err != nil {
		log.Fatalf("matter: %v", err)
	}
}

func readInput(path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func matterDigestHandler(cmd *cobra.Command, args []string) {
	code, _ := cmd.Flags().GetString("code")
	in, _ := cmd.Flags().GetString("in")

	data, err := readInput(in)
	matterBail(err)

	diger, err := cesr.Digest(data, code)
	matterBail(err)
	fmt.Println(diger.QB64())
}

func matterDecodeHandler(cmd *cobra.Command, args []string) {
	qb64, _ := cmd.Flags().GetString("qb64")
	if qb64 == "" {
		_ = cmd.Usage()
		matterBail(errors.New("--qb64 is required"))
	}
	m, err := cesr.FromQB64(qb64)
	matterBail(err)
	fmt.Printf("code=%s raw=%s\n", m.Code(), hex.EncodeToString(m.Raw()))
}

func matterEncodeHandler(cmd *cobra.Command, args []string) {
	code, _ := cmd.Flags().GetString("code")
	rawHex, _ := cmd.Flags().GetString("raw")
	if rawHex == "" {
		_ = cmd.Usage()
		matterBail(errors.New("--raw is required"))
	}
	raw, err := hex.DecodeString(rawHex)
	matterBail(err)
	m, err := cesr.NewMatter(cesr.NewMatterOpts{Code: code, Raw: raw})
	matterBail(err)
	fmt.Println(m.QB64())
}

// ---------------------------------------------------------------------------
// CLI definitions
// ---------------------------------------------------------------------------

var matterCmd = &cobra.Command{
	Use:   "matter",
	Short: "CESR primitive codec operations",
}

var matterDigestCmd = &cobra.Command{
	Use:   "digest",
	Short: "digest stdin (or --in) and print the qb64 digest",
	Run:   matterDigestHandler,
}

var matterDecodeCmd = &cobra.Command{
	Use:   "decode",
	Short: "decode a qb64 primitive into its code and raw hex",
	Run:   matterDecodeHandler,
}

var matterEncodeCmd = &cobra.Command{
	Use:   "encode",
	Short: "encode raw hex under a code into qb64",
	Run:   matterEncodeHandler,
}

func init() {
	matterDigestCmd.Flags().String("code", cesr.CodeBlake3_256.Code, "digest code")
	matterDigestCmd.Flags().String("in", "-", "input file, or - for stdin")

	matterDecodeCmd.Flags().String("qb64", "", "qb64 primitive to decode [required]")

	matterEncodeCmd.Flags().String("code", "", "primitive code [required]")
	matterEncodeCmd.Flags().String("raw", "", "raw bytes, hex encoded [required]")

	matterCmd.AddCommand(matterDigestCmd, matterDecodeCmd, matterEncodeCmd)
}

// MatterCmd exposes matter codec CLI operations.
var MatterCmd = matterCmd

package cli

// cmd/kerictl/cli/kel.go — CLI wrapper for the db.Baser KEL store, following
// the same globals-plus-PersistentPreRunE middleware idiom as
// cmd/cli/storage.go's initStorageMiddleware.

import (
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"keri/db"
	"keri/pkg/config"
)

// ---------------------------------------------------------------------------
// Globals & middleware
// ---------------------------------------------------------------------------

var (
	baser   *db.Baser
	kelLG   = logrus.New()
	kelPath string
)

func initKelMiddleware(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	cfg, err := config.LoadFromEnv()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if lvl, err := logrus.ParseLevel(cfg.Logging.Level); err == nil {
		kelLG.SetLevel(lvl)
	}

	kelPath, _ = cmd.Flags().GetString("db")
	if kelPath == "" {
		kelPath = os.Getenv("KERI_DB_PATH")
	}
	if kelPath == "" {
		kelPath = cfg.DBPath()
	}
	b, err := db.OpenBaser(kelPath, kelLG)
	if err != nil {
		return fmt.Errorf("open baser %q: %w", kelPath, err)
	}
	baser = b
	return nil
}

// ---------------------------------------------------------------------------
// Controllers
// ---------------------------------------------------------------------------

func kelBail(err error) {
	if err != nil {
		log.Fatalf("kel: %v", err)
	}
}

func kelPutHandler(cmd *cobra.Command, args []string) {
	pre, _ := cmd.Flags().GetString("pre")
	dig, _ := cmd.Flags().GetString("dig")
	snStr, _ := cmd.Flags().GetString("sn")
	in, _ := cmd.Flags().GetString("in")
	local, _ := cmd.Flags().GetBool("local")

	if pre == "" || dig == "" {
		_ = cmd.Usage()
		kelBail(errors.New("--pre and --dig are required"))
	}
	sn, err := strconv.ParseUint(snStr, 16, 64)
	kelBail(err)

	raw, err := readInput(in)
	kelBail(err)

	on, err := baser.PutEvent(pre, dig, sn, raw, local)
	kelBail(err)
	fmt.Printf("fn=%d\n", on)
}

func kelGetHandler(cmd *cobra.Command, args []string) {
	pre, _ := cmd.Flags().GetString("pre")
	dig, _ := cmd.Flags().GetString("dig")
	if pre == "" || dig == "" {
		_ = cmd.Usage()
		kelBail(errors.New("--pre and --dig are required"))
	}
	raw, ok, err := baser.Evts.Get(db.Key(pre, dig))
	kelBail(err)
	if !ok {
		kelBail(fmt.Errorf("no event stored for %s.%s", pre, dig))
	}
	os.Stdout.Write(raw)
}

func kelListHandler(cmd *cobra.Command, args []string) {
	pre, _ := cmd.Flags().GetString("pre")
	snStr, _ := cmd.Flags().GetString("sn")
	if pre == "" {
		_ = cmd.Usage()
		kelBail(errors.New("--pre is required"))
	}
	sn, err := strconv.ParseUint(snStr, 16, 64)
	kelBail(err)

	digs, err := baser.Kels.GetAll(pre, sn)
	kelBail(err)
	for _, d := range digs {
		fmt.Println(hex.EncodeToString(d))
	}
}

// ---------------------------------------------------------------------------
// CLI definitions
// ---------------------------------------------------------------------------

var kelCmd = &cobra.Command{
	Use:               "kel",
	Short:             "key-event-log store operations",
	PersistentPreRunE: initKelMiddleware,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if baser != nil {
			_ = baser.Close()
		}
	},
}

var kelPutCmd = &cobra.Command{
	Use:   "put",
	Short: "store a raw event under pre/dig and append it to the KEL",
	Run:   kelPutHandler,
}

var kelGetCmd = &cobra.Command{
	Use:   "get",
	Short: "print the raw event stored under pre/dig",
	Run:   kelGetHandler,
}

var kelListCmd = &cobra.Command{
	Use:   "list",
	Short: "list the digests logged for pre at sequence number sn",
	Run:   kelListHandler,
}

func init() {
	kelCmd.PersistentFlags().String("db", "", "path to the KEL bbolt file (default: KERI_DB_PATH, then the configured storage head)")

	kelPutCmd.Flags().String("pre", "", "identifier prefix [required]")
	kelPutCmd.Flags().String("dig", "", "event digest [required]")
	kelPutCmd.Flags().String("sn", "0", "sequence number, hex")
	kelPutCmd.Flags().String("in", "-", "input file, or - for stdin")
	kelPutCmd.Flags().Bool("local", false, "mark this event as locally authored")

	kelGetCmd.Flags().String("pre", "", "identifier prefix [required]")
	kelGetCmd.Flags().String("dig", "", "event digest [required]")

	kelListCmd.Flags().String("pre", "", "identifier prefix [required]")
	kelListCmd.Flags().String("sn", "0", "sequence number, hex")

	kelCmd.AddCommand(kelPutCmd, kelGetCmd, kelListCmd)
}

// KelCmd exposes KEL store CLI operations.
var KelCmd = kelCmd

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/joho/godotenv"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/rs/zerolog"
	"github.com/urfave/cli"

	utapi "github.com/ielm/utapi-go"
)

func main() {
	app := cli.NewApp()
	app.Name = "utcli"
	app.Usage = "Manages files stored with UploadThing: list, delete, rename, presign, and poll uploads"
	app.Version = utapi.Version
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:   "key",
			Usage:  "UploadThing secret key",
			EnvVar: "UPLOADTHING_SECRET",
		},
		cli.StringFlag{
			Name:  "host",
			Usage: "override the API host (for test servers)",
		},
		cli.StringFlag{
			Name:  "env-file",
			Usage: "load environment variables from this file before resolving credentials",
		},
		cli.BoolFlag{
			Name:  "verbose",
			Usage: "log each API request to stderr",
		},
	}
	app.Before = loadEnvFiles
	app.Commands = []cli.Command{
		{
			Name:      "ls",
			Aliases:   []string{"list"},
			Usage:     "List stored files",
			ArgsUsage: " ",
			Flags: []cli.Flag{
				cli.IntFlag{Name: "limit", Usage: "maximum number of files to return; omit to use the service default"},
				cli.IntFlag{Name: "offset", Usage: "number of files to skip"},
			},
			Action: listAction,
		},
		{
			Name:      "rm",
			Aliases:   []string{"delete"},
			Usage:     "Delete files by key",
			ArgsUsage: "KEY [KEY...]",
			Action:    deleteAction,
		},
		{
			Name:      "url",
			Aliases:   []string{"urls"},
			Usage:     "Resolve public URLs for file keys",
			ArgsUsage: "KEY [KEY...]",
			Action:    urlAction,
		},
		{
			Name:      "rename",
			Aliases:   []string{"mv"},
			Usage:     "Rename files, leaving keys and URLs unchanged",
			ArgsUsage: "KEY=NEWNAME [KEY=NEWNAME...]",
			Action:    renameAction,
		},
		{
			Name:      "presign",
			Usage:     "Issue a time-limited access URL for one file",
			ArgsUsage: "KEY",
			Flags: []cli.Flag{
				cli.Int64Flag{Name: "expires", Usage: "URL lifetime in seconds, at most 604800; omit to use the service default"},
				cli.StringSliceFlag{Name: "transform", Usage: "transformation parameter as name=value (repeatable)"},
			},
			Action: presignAction,
		},
		{
			Name:      "usage",
			Usage:     "Show account storage usage",
			ArgsUsage: " ",
			Action:    usageAction,
		},
		{
			Name:      "poll",
			Usage:     "Check whether an upload has finished",
			ArgsUsage: "KEY",
			Flags: []cli.Flag{
				cli.BoolFlag{Name: "wait", Usage: "keep polling with backoff until the upload is done"},
			},
			Action: pollAction,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("utcli: %v", err))
		os.Exit(1)
	}
}

// loadEnvFiles loads --env-file when given, then best-effort .env and
// ~/.uploadthing.env, so UPLOADTHING_SECRET can live outside the shell profile.
// Variables already set in the environment win.
func loadEnvFiles(c *cli.Context) error {
	if path := c.GlobalString("env-file"); path != "" {
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("load env file %s: %w", path, err)
		}
	}
	_ = godotenv.Load()
	if home, err := homedir.Dir(); err == nil {
		_ = godotenv.Load(filepath.Join(home, ".uploadthing.env"))
	}
	return nil
}

func newClient(c *cli.Context) (*utapi.Client, error) {
	opts := []utapi.Option{}
	if key := c.GlobalString("key"); key != "" {
		opts = append(opts, utapi.WithAPIKey(key))
	}
	if host := c.GlobalString("host"); host != "" {
		opts = append(opts, utapi.WithHost(host))
	}
	if c.GlobalBool("verbose") {
		logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			With().Timestamp().Logger().
			Level(zerolog.DebugLevel)
		opts = append(opts, utapi.WithLogger(logger))
	}
	return utapi.New(opts...)
}

func listAction(c *cli.Context) error {
	api, err := newClient(c)
	if err != nil {
		return err
	}

	opts := &utapi.ListFilesOpts{}
	if c.IsSet("limit") {
		limit := c.Int("limit")
		opts.Limit = &limit
	}
	if c.IsSet("offset") {
		offset := c.Int("offset")
		opts.Offset = &offset
	}

	listing, err := api.ListFiles(context.Background(), opts)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "KEY\tSTATUS\tSIZE\tNAME")
	for _, f := range listing.Files {
		size := ""
		if f.Size > 0 {
			size = humanize.IBytes(uint64(f.Size))
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", f.Key, colorStatus(f.Status), size, f.Name)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if listing.HasMore {
		fmt.Println(color.CyanString("more files available; use --offset to page"))
	}
	return nil
}

func deleteAction(c *cli.Context) error {
	keys := c.Args()
	if len(keys) == 0 {
		return errors.New("rm requires at least one file key")
	}
	api, err := newClient(c)
	if err != nil {
		return err
	}

	res, err := api.DeleteFiles(context.Background(), keys)
	if err != nil {
		return err
	}
	if !res.Success {
		return errors.New("service reported the deletion did not succeed")
	}
	if res.DeletedCount > 0 {
		fmt.Printf("deleted %s file(s)\n", humanize.Comma(int64(res.DeletedCount)))
	} else {
		fmt.Println("deleted")
	}
	return nil
}

func urlAction(c *cli.Context) error {
	keys := c.Args()
	if len(keys) == 0 {
		return errors.New("url requires at least one file key")
	}
	api, err := newClient(c)
	if err != nil {
		return err
	}

	res, err := api.GetFileURLs(context.Background(), keys)
	if err != nil {
		return err
	}

	byKey := res.ByKey()
	for _, key := range keys {
		if u, ok := byKey[key]; ok {
			fmt.Printf("%s\t%s\n", key, u)
		} else {
			fmt.Printf("%s\t%s\n", key, color.YellowString("(not found)"))
		}
	}
	return nil
}

func renameAction(c *cli.Context) error {
	args := c.Args()
	if len(args) == 0 {
		return errors.New("rename requires at least one KEY=NEWNAME pair")
	}

	renames := make([]utapi.FileRename, 0, len(args))
	for _, a := range args {
		key, name, ok := strings.Cut(a, "=")
		if !ok || key == "" || name == "" {
			return fmt.Errorf("invalid rename %q, want KEY=NEWNAME", a)
		}
		renames = append(renames, utapi.FileRename{FileKey: key, NewName: name})
	}

	api, err := newClient(c)
	if err != nil {
		return err
	}

	res, err := api.RenameFiles(context.Background(), renames)
	if err != nil {
		return err
	}
	if !res.Success {
		return errors.New("service reported the rename did not succeed")
	}
	if res.RenamedCount > 0 {
		fmt.Printf("renamed %s file(s)\n", humanize.Comma(int64(res.RenamedCount)))
	} else {
		fmt.Println("renamed")
	}
	return nil
}

func presignAction(c *cli.Context) error {
	key := c.Args().Get(0)
	if key == "" {
		return errors.New("presign requires a file key")
	}

	opts := utapi.PresignedURLOpts{FileKey: key}
	if c.IsSet("expires") {
		expires := c.Int64("expires")
		opts.ExpiresIn = &expires
	}
	for _, t := range c.StringSlice("transform") {
		name, value, ok := strings.Cut(t, "=")
		if !ok || name == "" {
			return fmt.Errorf("invalid transform %q, want name=value", t)
		}
		if opts.Transform == nil {
			opts.Transform = map[string]string{}
		}
		opts.Transform[name] = value
	}

	api, err := newClient(c)
	if err != nil {
		return err
	}

	res, err := api.GetPresignedURL(context.Background(), opts)
	if err != nil {
		return err
	}

	fmt.Println(res.URL)
	if !res.ExpiresAt.IsZero() {
		fmt.Fprintln(os.Stderr, color.CyanString("expires %s", humanize.Time(res.ExpiresAt)))
	}
	return nil
}

func usageAction(c *cli.Context) error {
	api, err := newClient(c)
	if err != nil {
		return err
	}

	info, err := api.GetUsageInfo(context.Background())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintf(w, "total stored\t%s\t(%s bytes)\n", info.TotalReadable, humanize.Comma(info.TotalBytes))
	fmt.Fprintf(w, "this app\t%s\n", info.AppTotalReadable)
	fmt.Fprintf(w, "files uploaded\t%s\n", humanize.Comma(int64(info.FilesUploaded)))
	fmt.Fprintf(w, "limit\t%s\n", info.LimitReadable)
	return w.Flush()
}

func pollAction(c *cli.Context) error {
	key := c.Args().Get(0)
	if key == "" {
		return errors.New("poll requires a file key")
	}

	api, err := newClient(c)
	if err != nil {
		return err
	}

	if c.Bool("wait") {
		if err := api.WaitForUpload(context.Background(), key); err != nil {
			return err
		}
		fmt.Println(color.GreenString("done"))
		return nil
	}

	res, err := api.PollUpload(context.Background(), key)
	if err != nil {
		return err
	}
	if res.Done() {
		fmt.Println(color.GreenString("done"))
	} else {
		fmt.Println(color.YellowString(res.Status))
	}
	return nil
}

func colorStatus(s utapi.FileStatus) string {
	switch s {
	case utapi.StatusUploaded:
		return color.GreenString(string(s))
	case utapi.StatusUploading:
		return color.YellowString(string(s))
	case utapi.StatusFailed:
		return color.RedString(string(s))
	case utapi.StatusDeletionPending:
		return color.MagentaString(string(s))
	default:
		return string(s)
	}
}

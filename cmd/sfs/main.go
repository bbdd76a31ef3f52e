package main

import (
	"encoding/json"
	"errors"
	"fmt"
	stdio "io"
	"io/ioutil"
	"log"
	"os"

	"github.com/urfave/cli/v2"
	"github.com/weberc2/sfs/pkg/io"
	"github.com/weberc2/sfs/pkg/sfs"
	"github.com/weberc2/sfs/pkg/snapshot"
	"github.com/weberc2/sfs/pkg/types"
)

func main() {
	if err := newApp(os.Stdin, os.Stdout).Run(os.Args); err != nil {
		log.Fatalf(`{"message": "%v"}`, err)
	}
}

func newApp(stdin stdio.Reader, stdout stdio.Writer) *cli.App {
	return &cli.App{
		Name:        appName,
		Usage:       "a simple single-directory file system",
		Description: "format, inspect, and edit SFS volumes and snapshots",
		Commands: []*cli.Command{{
			Name:        "format",
			Aliases:     []string{"mkfs"},
			Usage:       "write an empty file system",
			Description: "write an empty file system to the configured volume",
			Action: withFS(false, true, func(fs *sfs.FileSystem, ctx *cli.Context) error {
				return fs.Format()
			}),
		}, {
			Name:        "ls",
			Aliases:     []string{"list"},
			Usage:       "list the root directory",
			Description: "list the root directory",
			Action: withFS(true, false, func(fs *sfs.FileSystem, ctx *cli.Context) error {
				return fs.PrintList(stdout)
			}),
		}, {
			Name:    "put",
			Aliases: []string{"write"},
			Usage:   "write stdin to a file, creating it if necessary",
			Description: "write stdin over the start of a file, creating " +
				"the file if it doesn't exist",
			ArgsUsage: "NAME",
			Action: withFS(true, true, func(fs *sfs.FileSystem, ctx *cli.Context) error {
				name, err := nameArg(ctx)
				if err != nil {
					return err
				}
				return put(fs, name, stdin)
			}),
		}, {
			Name:        "cat",
			Aliases:     []string{"read"},
			Usage:       "write a file's contents to stdout",
			Description: "write a file's contents to stdout",
			ArgsUsage:   "NAME",
			Action: withFS(true, false, func(fs *sfs.FileSystem, ctx *cli.Context) error {
				name, err := nameArg(ctx)
				if err != nil {
					return err
				}
				info, err := fs.Stat(name)
				if err != nil {
					return err
				}
				fd, err := fs.Open(name, false)
				if err != nil {
					return err
				}
				defer fs.Close(fd)
				data := make([]byte, info.Size)
				if _, err := fs.Read(fd, data); err != nil {
					return err
				}
				_, err = stdout.Write(data)
				return err
			}),
		}, {
			Name:        "stat",
			Usage:       "describe a file",
			Description: "print a file's directory entry and inode as JSON",
			ArgsUsage:   "NAME",
			Action: withFS(true, false, func(fs *sfs.FileSystem, ctx *cli.Context) error {
				name, err := nameArg(ctx)
				if err != nil {
					return err
				}
				info, err := fs.Stat(name)
				if err != nil {
					return err
				}
				return jsonPrint(stdout, info)
			}),
		}, {
			Name:        "super",
			Aliases:     []string{"superblock"},
			Usage:       "describe the superblock",
			Description: "print the superblock and the root inode",
			Action: withFS(true, false, func(fs *sfs.FileSystem, ctx *cli.Context) error {
				if err := fs.PrintSuper(stdout); err != nil {
					return err
				}
				return fs.PrintInode(stdout, types.InoRoot)
			}),
		}, {
			Name:        "snapshots",
			Usage:       "commands for managing saved snapshots",
			Description: "commands for managing saved snapshots",
			Subcommands: []*cli.Command{{
				Name:        "ls",
				Aliases:     []string{"list"},
				Usage:       "list snapshots, optionally by prefix",
				Description: "list snapshots, optionally by prefix",
				ArgsUsage:   "[PREFIX]",
				Action: withStore(func(store snapshot.Store, ctx *cli.Context) error {
					names, err := snapshot.Names(store, ctx.Args().First())
					if err != nil {
						return err
					}
					for _, name := range names {
						fmt.Fprintln(stdout, name)
					}
					return nil
				}),
			}, {
				Name:        "rm",
				Aliases:     []string{"delete"},
				Usage:       "delete a snapshot",
				Description: "delete a snapshot and its checksum",
				ArgsUsage:   "NAME",
				Action: withStore(func(store snapshot.Store, ctx *cli.Context) error {
					name, err := nameArg(ctx)
					if err != nil {
						return err
					}
					return snapshot.Remove(store, name)
				}),
			}},
		}, {
			Name:        "demo",
			Usage:       "exercise a throwaway in-memory file system",
			Description: "format an in-memory volume, write a file, and print it",
			Action: func(ctx *cli.Context) error {
				return demo(stdout)
			},
		}},
	}
}

// withFS loads the configured volume before running `f`, mounting it if
// `mount` is set, and persists it afterwards if `save` is set.
func withFS(
	mount bool,
	save bool,
	f func(*sfs.FileSystem, *cli.Context) error,
) cli.ActionFunc {
	return func(ctx *cli.Context) error {
		c, err := LoadConfig()
		if err != nil {
			return err
		}
		if err := c.Validate(); err != nil {
			return err
		}

		if c.Device != "" {
			return onDevice(c, mount, save, ctx, f)
		}
		return onSnapshot(c, mount, save, ctx, f)
	}
}

func onDevice(
	c *Config,
	mount bool,
	save bool,
	ctx *cli.Context,
	f func(*sfs.FileSystem, *cli.Context) error,
) error {
	volume, err := io.OpenFileVolume(c.Device, c.Geometry.Size())
	if err != nil {
		return err
	}
	defer volume.Close()

	fs, err := sfs.New(volume, c.Geometry)
	if err != nil {
		return err
	}
	if mount {
		if err := fs.Mount(nil); err != nil {
			return err
		}
	}
	if err := f(fs, ctx); err != nil {
		return err
	}
	if save {
		if err := volume.Sync(); err != nil {
			return fmt.Errorf("syncing device `%s`: %w", c.Device, err)
		}
	}
	return nil
}

func onSnapshot(
	c *Config,
	mount bool,
	save bool,
	ctx *cli.Context,
	f func(*sfs.FileSystem, *cli.Context) error,
) error {
	store, cleanup, err := c.OpenStore()
	if err != nil {
		return err
	}
	defer cleanup()

	fs, err := sfs.NewMemory(c.Geometry)
	if err != nil {
		return err
	}

	name := snapshot.Name(c.Snapshot)
	if mount {
		image, err := snapshot.Load(store, name)
		if err != nil {
			if errors.Is(err, types.NotFoundErr) {
				return fmt.Errorf(
					"snapshot `%s` doesn't exist; run `%s format`: %w",
					name,
					appName,
					err,
				)
			}
			return err
		}
		if err := fs.Mount(image); err != nil {
			return err
		}
	}

	if err := f(fs, ctx); err != nil {
		return err
	}

	if save {
		if _, err := snapshot.Save(store, fs, name); err != nil {
			return err
		}
		log.Printf(
			`{"message": "saved snapshot", "snapshot": "%s", "store": "%s"}`,
			name,
			c.Store,
		)
	}
	return nil
}

func withStore(
	f func(snapshot.Store, *cli.Context) error,
) cli.ActionFunc {
	return func(ctx *cli.Context) error {
		c, err := LoadConfig()
		if err != nil {
			return err
		}
		if err := c.Validate(); err != nil {
			return err
		}
		store, cleanup, err := c.OpenStore()
		if err != nil {
			return err
		}
		defer cleanup()
		return f(store, ctx)
	}
}

func nameArg(ctx *cli.Context) (string, error) {
	if ctx.NArg() != 1 {
		return "", fmt.Errorf(
			"`%s` takes exactly one NAME argument; found `%d`",
			ctx.Command.Name,
			ctx.NArg(),
		)
	}
	return ctx.Args().First(), nil
}

// put writes `r` from the start of the file `name`, creating it if it
// doesn't exist. Files are never truncated, so bytes past the end of a
// shorter input are left in place.
func put(fs *sfs.FileSystem, name string, r stdio.Reader) error {
	data, err := ioutil.ReadAll(r)
	if err != nil {
		return fmt.Errorf("reading stdin: %w", err)
	}

	_, err = fs.Stat(name)
	create := errors.Is(err, sfs.FileNotFoundErr)
	if err != nil && !create {
		return err
	}

	fd, err := fs.Open(name, create)
	if err != nil {
		return err
	}
	defer fs.Close(fd)
	if _, err := fs.Write(fd, data); err != nil {
		return err
	}
	log.Printf(
		`{"message": "wrote file", "name": "%s", "bytes": %d, "created": %t}`,
		name,
		len(data),
		create,
	)
	return nil
}

func jsonPrint(w stdio.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling output: %w", err)
	}
	_, err = fmt.Fprintf(w, "%s\n", data)
	return err
}

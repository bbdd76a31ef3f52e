package main

import (
	"fmt"
	"io"

	"github.com/weberc2/sfs/pkg/sfs"
	"github.com/weberc2/sfs/pkg/types"
)

const demoContents = "This string is 29 bytes long\x00"

// demo formats a throwaway in-memory volume, writes a file, and prints the
// resulting file system.
func demo(w io.Writer) error {
	fs, err := sfs.NewMemory(types.DefaultGeometry)
	if err != nil {
		return err
	}
	if err := fs.Format(); err != nil {
		return err
	}
	if err := fs.Mount(nil); err != nil {
		return err
	}

	fd, err := fs.Open("file1", true)
	if err != nil {
		return err
	}
	if _, err := fs.Write(fd, []byte(demoContents)); err != nil {
		return err
	}
	if _, err := fs.Seek(fd, 0, io.SeekStart); err != nil {
		return err
	}
	data := make([]byte, len(demoContents))
	if _, err := fs.Read(fd, data); err != nil {
		return err
	}
	if err := fs.Close(fd); err != nil {
		return err
	}
	fmt.Fprintf(w, "read back: %q\n\n", data)

	if err := fs.PrintSuper(w); err != nil {
		return err
	}
	if err := fs.PrintInode(w, types.InoRoot); err != nil {
		return err
	}
	fmt.Fprintln(w)
	return fs.PrintList(w)
}

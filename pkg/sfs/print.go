package sfs

import (
	"fmt"
	stdio "io"
	"strings"
	"text/tabwriter"

	. "github.com/weberc2/sfs/pkg/types"
)

// PrintSuper writes a human-readable summary of the superblock to `w`.
func (fs *FileSystem) PrintSuper(w stdio.Writer) error {
	sb, err := fs.Superblock()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(
		w,
		"superblock\n"+
			"  magic:        %d\n"+
			"  inode blocks: %d (%d inodes)\n"+
			"  data blocks:  %d\n"+
			"  inodes used:  %d\n"+
			"  data used:    %d\n",
		SuperblockMagic,
		sb.InodeBlocks,
		fs.geometry.InodeCount(),
		sb.DataBlocks,
		sb.UsedInodes,
		sb.UsedData,
	)
	return err
}

// PrintInode writes a one-line summary of inode `ino` to `w`.
func (fs *FileSystem) PrintInode(w stdio.Writer, ino Ino) error {
	fs.mutex.Lock()
	defer fs.mutex.Unlock()

	if err := fs.requireMounted(); err != nil {
		return fmt.Errorf("printing inode `%d`: %w", ino, err)
	}

	var inode Inode
	if err := fs.inodes.Get(ino, &inode); err != nil {
		return fmt.Errorf("printing inode `%d`: %w", ino, err)
	}
	_, err := fmt.Fprintln(w, formatInode(&inode))
	return err
}

func formatInode(inode *Inode) string {
	return fmt.Sprintf(
		"%c %d bytes %d blocks: %s",
		inode.FileType.Letter(),
		inode.Size,
		inode.UsedBlocks(),
		formatBlocks(inode.Blocks),
	)
}

func formatBlocks(blocks []Block) string {
	var sb strings.Builder
	for i, block := range blocks {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%d", block)
	}
	return sb.String()
}

// PrintList writes a table of the root directory's entries to `w`.
func (fs *FileSystem) PrintList(w stdio.Writer) error {
	infos, err := fs.List()
	if err != nil {
		return err
	}

	// tabwriter holds every cell until Flush and keeps the first write error
	// from `w`, so checking Flush covers the writes below.
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tTYPE\tSIZE\tBLOCKS")
	for i := range infos {
		fmt.Fprintf(
			tw,
			"%s\t%c\t%d\t%s\n",
			infos[i].Name,
			infos[i].FileType.Letter(),
			infos[i].Size,
			formatBlocks(infos[i].Blocks),
		)
	}
	return tw.Flush()
}

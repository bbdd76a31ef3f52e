package directory

import (
	. "github.com/weberc2/sfs/pkg/types"
)

// FileInfo is a directory entry joined with a summary of its inode.
type FileInfo struct {
	Ino      Ino      `json:"ino"`
	FileType FileType `json:"fileType"`
	Name     string   `json:"name"`
	Size     Byte     `json:"size"`
	Blocks   []Block  `json:"blocks"`
}

func (fi *FileInfo) Equal(other *FileInfo) bool {
	if fi.Ino != other.Ino || fi.FileType != other.FileType ||
		fi.Name != other.Name || fi.Size != other.Size ||
		len(fi.Blocks) != len(other.Blocks) {
		return false
	}
	for i := range fi.Blocks {
		if fi.Blocks[i] != other.Blocks[i] {
			return false
		}
	}
	return true
}

func (fi *FileInfo) fill(entry *DirEntry, inode *Inode) {
	*fi = FileInfo{
		Ino:      entry.Ino,
		FileType: inode.FileType,
		Name:     entry.Name,
		Size:     inode.Size,
		Blocks:   append([]Block{}, inode.Blocks...),
	}
}

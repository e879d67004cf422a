package archive

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"
)

// Kind distinguishes regular files from directory entries.
type Kind int

const (
	KindFile Kind = iota
	KindDir
)

func (k Kind) String() string {
	if k == KindDir {
		return "directory"
	}
	return "file"
}

// modifiedTime is stamped on every entry written from memory so that
// serialising the same archive twice yields identical bytes.
var modifiedTime = time.Date(1980, 1, 1, 0, 0, 0, 0, time.UTC)

// Entry is an immutable archive member. Mutations replace entries instead of
// editing them, which lets clones share entries safely.
type Entry struct {
	Path string
	Kind Kind

	content []byte
	src     *zip.File // set while the entry is byte-identical to the loaded container
}

// NewFile creates a file entry holding a private copy of content.
func NewFile(path string, content []byte) *Entry {
	return &Entry{Path: path, Kind: KindFile, content: bytes.Clone(content)}
}

// NewDir creates a directory entry.
func NewDir(path string) *Entry {
	return &Entry{Path: path, Kind: KindDir}
}

// Content returns a copy of the entry's bytes.
func (e *Entry) Content() []byte {
	return bytes.Clone(e.content)
}

// Size returns the uncompressed size of the entry.
func (e *Entry) Size() int {
	return len(e.content)
}

// Pristine reports whether the entry still refers to the raw bytes of the
// container it was loaded from.
func (e *Entry) Pristine() bool {
	return e.src != nil
}

// Limits bounds what Load accepts. Zero values disable a check.
type Limits struct {
	MaxEntries    int
	MaxEntryBytes int64
}

// Archive is an ordered, path-keyed collection of entries.
type Archive struct {
	entries []*Entry
	index   map[string]int
}

// New returns an empty archive.
func New() *Archive {
	return &Archive{index: make(map[string]int)}
}

// Load decodes a ZIP container without limits.
func Load(data []byte) (*Archive, error) {
	return LoadWithLimits(data, Limits{})
}

// LoadWithLimits decodes a ZIP container into an Archive.
// Any decoding failure, unsafe entry name, duplicate entry or limit violation
// is reported as ErrCorruptArchive.
func LoadWithLimits(data []byte, limits Limits) (*Archive, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptArchive, err)
	}
	if limits.MaxEntries > 0 && len(zr.File) > limits.MaxEntries {
		return nil, fmt.Errorf("%w: %d entries exceeds limit %d", ErrCorruptArchive, len(zr.File), limits.MaxEntries)
	}

	a := New()
	for _, f := range zr.File {
		kind := KindFile
		if strings.HasSuffix(f.Name, "/") || f.FileInfo().IsDir() {
			kind = KindDir
		}

		path, err := Resolve(f.Name)
		if err != nil {
			return nil, fmt.Errorf("%w: unsafe entry name: %w", ErrCorruptArchive, err)
		}
		if a.Has(path) {
			return nil, fmt.Errorf("%w: duplicate entry %s", ErrCorruptArchive, path)
		}

		var content []byte
		if kind == KindFile {
			content, err = readZipFile(f, limits.MaxEntryBytes)
			if err != nil {
				return nil, err
			}
		}
		a.append(&Entry{Path: path, Kind: kind, content: content, src: f})
	}
	return a, nil
}

func readZipFile(f *zip.File, limit int64) ([]byte, error) {
	if limit > 0 && f.UncompressedSize64 > uint64(limit) {
		return nil, &EntryTooLargeError{Path: f.Name, Size: f.UncompressedSize64, Limit: limit}
	}
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", ErrCorruptArchive, f.Name, err)
	}
	defer rc.Close()

	var r io.Reader = rc
	if limit > 0 {
		r = io.LimitReader(rc, limit+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", ErrCorruptArchive, f.Name, err)
	}
	if limit > 0 && int64(len(data)) > limit {
		return nil, &EntryTooLargeError{Path: f.Name, Size: uint64(len(data)), Limit: limit}
	}
	return data, nil
}

func (a *Archive) append(e *Entry) {
	a.index[e.Path] = len(a.entries)
	a.entries = append(a.entries, e)
}

// Clone returns a structurally independent copy. Entries are shared because
// they are never mutated in place.
func (a *Archive) Clone() *Archive {
	c := &Archive{
		entries: make([]*Entry, len(a.entries)),
		index:   make(map[string]int, len(a.index)),
	}
	copy(c.entries, a.entries)
	for k, v := range a.index {
		c.index[k] = v
	}
	return c
}

// Len returns the number of entries.
func (a *Archive) Len() int {
	return len(a.entries)
}

// Get returns the entry stored at path.
func (a *Archive) Get(path string) (*Entry, bool) {
	i, ok := a.index[path]
	if !ok {
		return nil, false
	}
	return a.entries[i], true
}

// Has reports whether an explicit entry exists at path.
func (a *Archive) Has(path string) bool {
	_, ok := a.index[path]
	return ok
}

// IsDir reports whether path is a directory, either through an explicit
// directory entry or because other entries are nested beneath it.
func (a *Archive) IsDir(path string) bool {
	if e, ok := a.Get(path); ok {
		return e.Kind == KindDir
	}
	prefix := path + "/"
	for _, e := range a.entries {
		if strings.HasPrefix(e.Path, prefix) {
			return true
		}
	}
	return false
}

// Exists reports whether path names an entry or an implied directory.
func (a *Archive) Exists(path string) bool {
	return a.Has(path) || a.IsDir(path)
}

// Entries returns the entries in archive order.
func (a *Archive) Entries() []*Entry {
	out := make([]*Entry, len(a.entries))
	copy(out, a.entries)
	return out
}

// Paths returns the explicit entry paths in archive order.
func (a *Archive) Paths() []string {
	out := make([]string, len(a.entries))
	for i, e := range a.entries {
		out[i] = e.Path
	}
	return out
}

// Listing returns every explicit path followed by the directories that are
// only implied by nested entries, in first-seen order.
func (a *Archive) Listing() []string {
	out := a.Paths()
	seen := make(map[string]bool, len(out))
	for _, p := range out {
		seen[p] = true
	}
	for _, e := range a.entries {
		segs := Segments(e.Path)
		for i := 1; i < len(segs); i++ {
			dir := strings.Join(segs[:i], "/")
			if !seen[dir] {
				seen[dir] = true
				out = append(out, dir)
			}
		}
	}
	return out
}

// Children returns the explicit entries nested under dir, in archive order.
func (a *Archive) Children(dir string) []string {
	prefix := dir + "/"
	var out []string
	for _, e := range a.entries {
		if strings.HasPrefix(e.Path, prefix) {
			out = append(out, e.Path)
		}
	}
	return out
}

// Put stores e, replacing an existing entry in place or appending a new one.
func (a *Archive) Put(e *Entry) {
	if i, ok := a.index[e.Path]; ok {
		a.entries[i] = e
		return
	}
	a.append(e)
}

// Remove deletes the entry at path and reports whether it existed.
func (a *Archive) Remove(path string) bool {
	i, ok := a.index[path]
	if !ok {
		return false
	}
	a.entries = append(a.entries[:i:i], a.entries[i+1:]...)
	delete(a.index, path)
	for j := i; j < len(a.entries); j++ {
		a.index[a.entries[j].Path] = j
	}
	return true
}

// Serialize encodes the archive as a ZIP container. Pristine entries are
// copied raw from their source container; everything else is written fresh.
func (a *Archive) Serialize() ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	for _, e := range a.entries {
		if e.src != nil {
			if err := zw.Copy(e.src); err != nil {
				return nil, fmt.Errorf("copy entry %s: %w", e.Path, err)
			}
			continue
		}

		hdr := &zip.FileHeader{
			Name:     e.Path,
			Method:   zip.Deflate,
			Modified: modifiedTime,
		}
		if e.Kind == KindDir {
			hdr.Name += "/"
			hdr.Method = zip.Store
		}
		w, err := zw.CreateHeader(hdr)
		if err != nil {
			return nil, fmt.Errorf("create entry %s: %w", e.Path, err)
		}
		if e.Kind == KindFile {
			if _, err := w.Write(e.content); err != nil {
				return nil, fmt.Errorf("write entry %s: %w", e.Path, err)
			}
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("finalise archive: %w", err)
	}
	return buf.Bytes(), nil
}

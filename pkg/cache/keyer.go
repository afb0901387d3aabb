package cache

// Keyer builds cache keys. Implementations must return the same key for the
// same arguments and different keys whenever an argument differs.
type Keyer interface {
	// RecordsKey identifies the records parsed from a source file.
	RecordsKey(sourceHash string, opts RecordsKeyOpts) string

	// ArtifactKey identifies one rendered export of an assembled layout.
	ArtifactKey(modelHash string, opts ArtifactKeyOpts) string
}

// RecordsKeyOpts holds the reader options that change what a source parses to.
type RecordsKeyOpts struct {
	Format       string `json:"format"`
	Sheet        string `json:"sheet,omitempty"`
	DataStartRow int    `json:"data_start_row,omitempty"`
}

// ArtifactKeyOpts holds the render options that change an artifact's bytes.
type ArtifactKeyOpts struct {
	Format   string `json:"format"`
	Indent   string `json:"indent,omitempty"`
	Detailed bool   `json:"detailed,omitempty"`
}

// DefaultKeyer hashes every argument into the key.
type DefaultKeyer struct{}

// NewDefaultKeyer returns a DefaultKeyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// RecordsKey implements Keyer.
func (DefaultKeyer) RecordsKey(sourceHash string, opts RecordsKeyOpts) string {
	return layoutKey(KindRecords, opts.Format, sourceHash, opts)
}

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(modelHash string, opts ArtifactKeyOpts) string {
	return layoutKey(KindArtifact, opts.Format, modelHash, opts)
}

var _ Keyer = DefaultKeyer{}

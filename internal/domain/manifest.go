package domain

// VersionManifest is the build metadata read from the manifest file.
// Version is empty when the file carries no version.
type VersionManifest struct {
	Name    string
	Version string
}

// HasVersion reports whether the manifest names a version.
func (m VersionManifest) HasVersion() bool {
	return m.Version != ""
}

package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
)

// Namespace is the kind of entry a key belongs to.
type Namespace string

const (
	NamespaceAll      Namespace = ""
	NamespaceScene    Namespace = "scene"
	NamespaceArtifact Namespace = "artifact"
	NamespaceImport   Namespace = "import"
	// NamespaceOther holds keys not made by a Keyer.
	NamespaceOther Namespace = "other"
)

// Namespaces lists the namespaces a Keyer produces.
var Namespaces = []Namespace{NamespaceScene, NamespaceArtifact, NamespaceImport}

// ParseNamespace maps a user-facing name to a namespace. "" and "all"
// select every namespace.
func ParseNamespace(s string) (Namespace, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return NamespaceAll, true
	case "scene", "scenes":
		return NamespaceScene, true
	case "artifact", "artifacts":
		return NamespaceArtifact, true
	case "import", "imports":
		return NamespaceImport, true
	}
	return NamespaceAll, false
}

// NamespaceOf returns the namespace of a key made by a Keyer, skipping any
// ScopedKeyer prefix.
func NamespaceOf(key string) Namespace {
	for part := range strings.SplitSeq(key, ":") {
		for _, ns := range Namespaces {
			if part == string(ns) {
				return ns
			}
		}
	}
	return NamespaceOther
}

// Keyer generates cache keys.
type Keyer interface {
	// SceneKey identifies the laid-out scene of a document.
	SceneKey(docHash string, opts SceneKeyOpts) string

	// ArtifactKey identifies one rendered output of a document.
	ArtifactKey(docHash string, opts ArtifactKeyOpts) string

	// ImportKey identifies the result of a remote feature query.
	ImportKey(source string, query any) string
}

// SceneKeyOpts lists everything that changes a layout. Negative gaps and a
// zero scale mean the document's own values are used.
type SceneKeyOpts struct {
	Scale    float64 `json:"scale"`
	HGap     float64 `json:"hgap"`
	VGap     float64 `json:"vgap"`
	TrackGap float64 `json:"track_gap"`
	PanelGap float64 `json:"panel_gap"`
	Style    string  `json:"style,omitempty"`
}

// ArtifactKeyOpts lists everything that changes a rendered output.
type ArtifactKeyOpts struct {
	Scene      SceneKeyOpts `json:"scene"`
	Format     string       `json:"format"`
	Background string       `json:"background,omitempty"`
	Margin     float64      `json:"margin,omitempty"`
	Bands      bool         `json:"bands,omitempty"`
	Title      string       `json:"title,omitempty"`
	PNGScale   float64      `json:"png_scale,omitempty"`
	Detailed   bool         `json:"detailed,omitempty"`
}

// DefaultKeyer hashes key components with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

func (DefaultKeyer) SceneKey(docHash string, opts SceneKeyOpts) string {
	return hashKey(string(NamespaceScene), docHash, opts)
}

func (DefaultKeyer) ArtifactKey(docHash string, opts ArtifactKeyOpts) string {
	return hashKey(string(NamespaceArtifact), docHash, opts)
}

func (DefaultKeyer) ImportKey(source string, query any) string {
	return hashKey(string(NamespaceImport)+":"+source, query)
}

// hashKey generates a cache key by hashing the components.
// The key format is: prefix:hash(parts...)
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(hash[:]))
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

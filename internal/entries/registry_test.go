package entries

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func testEntry(uniqueID string) *Entry {
	return &Entry{
		EntryID:  "entry-" + uniqueID,
		UniqueID: uniqueID,
		Title:    "Router " + uniqueID,
		Source:   SourceUser,
		State:    StateNotLoaded,
		Data: Data{
			UDN:         "uuid:" + uniqueID,
			ST:          "urn:schemas-upnp-org:device:InternetGatewayDevice:1",
			OriginalUDN: "uuid:" + uniqueID,
			Location:    "http://192.168.1.1:5000/desc.xml",
		},
	}
}

func TestLoadFromMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "entries.yaml")

	registry, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if registry.Version != 1 {
		t.Errorf("Version = %v, want 1", registry.Version)
	}
	if len(registry.Entries) != 0 {
		t.Errorf("new registry has %d entries, want 0", len(registry.Entries))
	}
}

func TestSaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "entries.yaml")

	registry, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	registry.Add(testEntry("igd-1"))
	if err := registry.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	reloaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() after save error = %v", err)
	}

	entry := reloaded.ByUniqueID("igd-1")
	if entry == nil {
		t.Fatal("ByUniqueID() = nil after reload")
	}
	if entry.Title != "Router igd-1" {
		t.Errorf("Title = %v, want Router igd-1", entry.Title)
	}
	if entry.Data.OriginalUDN != "uuid:igd-1" {
		t.Errorf("OriginalUDN = %v, want uuid:igd-1", entry.Data.OriginalUDN)
	}
	if entry.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set by Add")
	}
}

func TestSaveLeavesNoTempFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "entries.yaml")

	registry, _ := LoadFrom(path)
	registry.Add(testEntry("igd-1"))
	if err := registry.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temporary file left behind after save")
	}
}

func TestLoadFromRejectsUnknownVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "entries.yaml")
	if err := os.WriteFile(path, []byte("version: 2\n"), 0600); err != nil {
		t.Fatal(err)
	}

	_, err := LoadFrom(path)
	if err == nil || !strings.Contains(err.Error(), "unsupported registry version") {
		t.Errorf("LoadFrom() error = %v, want unsupported version error", err)
	}
}

func TestAddReplacesSameUniqueID(t *testing.T) {
	registry := NewRegistry(filepath.Join(t.TempDir(), "entries.yaml"))

	first := testEntry("igd-1")
	registry.Add(first)

	second := testEntry("igd-1")
	second.Title = "Renamed"
	registry.Add(second)

	if len(registry.Entries) != 1 {
		t.Fatalf("registry has %d entries, want 1", len(registry.Entries))
	}
	if registry.Entries[0].Title != "Renamed" {
		t.Errorf("Title = %v, want Renamed", registry.Entries[0].Title)
	}
	if !registry.Entries[0].CreatedAt.Equal(first.CreatedAt) {
		t.Error("replacement should keep the original CreatedAt")
	}
}

func TestAllAndUniqueIDsFilterIgnored(t *testing.T) {
	registry := NewRegistry(filepath.Join(t.TempDir(), "entries.yaml"))

	registry.Add(testEntry("igd-1"))
	ignored := testEntry("igd-2")
	ignored.Source = SourceIgnore
	registry.Add(ignored)

	if got := len(registry.All(false)); got != 1 {
		t.Errorf("All(false) returned %d entries, want 1", got)
	}
	if got := len(registry.All(true)); got != 2 {
		t.Errorf("All(true) returned %d entries, want 2", got)
	}

	ids := registry.UniqueIDs(false)
	if ids["igd-2"] {
		t.Error("UniqueIDs(false) should exclude ignored entries")
	}
	if !registry.UniqueIDs(true)["igd-2"] {
		t.Error("UniqueIDs(true) should include ignored entries")
	}
}

func TestRemove(t *testing.T) {
	registry := NewRegistry(filepath.Join(t.TempDir(), "entries.yaml"))
	registry.Add(testEntry("igd-1"))

	if !registry.Remove("entry-igd-1") {
		t.Error("Remove() = false for existing entry")
	}
	if registry.Remove("entry-igd-1") {
		t.Error("Remove() = true for missing entry")
	}
	if len(registry.Entries) != 0 {
		t.Errorf("registry has %d entries after remove, want 0", len(registry.Entries))
	}
}

func TestIgnore(t *testing.T) {
	registry := NewRegistry(filepath.Join(t.TempDir(), "entries.yaml"))
	entry := testEntry("igd-1")
	entry.State = StateLoaded
	registry.Add(entry)

	if !registry.Ignore("entry-igd-1") {
		t.Fatal("Ignore() = false for existing entry")
	}
	if !entry.Ignored() {
		t.Error("entry should be ignored")
	}
	if entry.State != StateNotLoaded {
		t.Error("ignored entry should not stay loaded")
	}
	if registry.Ignore("missing") {
		t.Error("Ignore() = true for missing entry")
	}
}

package ports

import "github.com/davidchisnall/microvium/domain/entities"

// FixtureParser parses a test case's metadata into a Fixture.
type FixtureParser interface {
	// Parse unmarshals fixture bytes into an entities.Fixture.
	Parse(data []byte) (*entities.Fixture, error)
}

// SnapshotLoader reads a snapshot image from storage.
type SnapshotLoader interface {
	// Load returns the entire image as one buffer, or an error if the
	// artifact is missing, unreadable, or truncated.
	Load(path string) ([]byte, error)
}

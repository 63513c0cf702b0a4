package driver

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/tools/txtar"

	"github.com/occ2swift/occ/internal/config"
)

// Golden fixtures realize §8's "concrete scenarios" as full parse → collect
// → pass-pipeline → emit round trips, one txtar archive per scenario: an
// `input.m` section and an `expected.swift` section naming the lines the
// real emitted Swift must contain. Full-file exact comparison would pin
// down incidental whitespace the emitter never promised to preserve, so
// each non-blank expected line is checked with strings.Contains, the same
// substring style internal/emit's own tests already use.

const cgPointMakeFixture = `
-- input.m --
@interface Widget : NSObject
@property (nonatomic, assign) CGPoint origin;
- (void)reset;
@end

@implementation Widget
- (void)reset {
  self.origin = CGPointMake(1, 2);
}
@end
-- expected.swift --
import Foundation
class Widget: NSObject {
var origin: CGPoint
func reset() {
self.origin = CGPoint(x: 1, y: 2)
`

const weakPropertyFixture = `
-- input.m --
@interface Widget : NSObject
@property (weak) Widget *d;
@end
-- expected.swift --
weak var d: Widget?
`

const assignPropertyFixture = `
-- input.m --
@interface Widget : NSObject
@property (assign) Widget *d;
@end
-- expected.swift --
unowned(unsafe) var d: Widget!
`

func runGoldenFixture(t *testing.T, archive string) string {
	t.Helper()
	a := txtar.Parse([]byte(archive))

	var input, expected string
	for _, f := range a.Files {
		switch f.Name {
		case "input.m":
			input = string(f.Data)
		case "expected.swift":
			expected = string(f.Data)
		}
	}
	if input == "" || expected == "" {
		t.Fatalf("fixture missing input.m or expected.swift sections")
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "Widget.m")
	if err := os.WriteFile(path, []byte(input), 0o644); err != nil {
		t.Fatal(err)
	}

	d, err := New(config.Default())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	result, err := d.Run(context.Background(), []string{path}, 2)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if result.HasErrors() {
		t.Fatalf("unexpected errors: %v", result.Diagnostics)
	}

	out, ok := result.Outputs[path]
	if !ok {
		t.Fatalf("expected output for %s, got %v", path, result.Outputs)
	}
	for _, line := range strings.Split(strings.TrimSpace(expected), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if !strings.Contains(out, line) {
			t.Errorf("expected emitted Swift to contain %q, got:\n%s", line, out)
		}
	}
	return out
}

// Scenario 1: CGPointMake(1, 2) -> CGPoint(x: 1, y: 2), the invocation
// transformer rewriting a builtin CoreGraphics constructor call.
func TestGoldenCGPointMakeRewritesToCGPointInitializer(t *testing.T) {
	runGoldenFixture(t, cgPointMakeFixture)
}

// Scenario 5: a weak property with no explicit nullability qualifier is
// always Optional, never implicitly-unwrapped — ARC can zero it at any
// point regardless of what the declaration says.
func TestGoldenWeakPropertyIsAlwaysOptional(t *testing.T) {
	runGoldenFixture(t, weakPropertyFixture)
}

// Scenario 6: an assign property outside NS_ASSUME_NONNULL becomes an
// unowned(unsafe) implicitly-unwrapped optional.
func TestGoldenAssignPropertyOutsideNonnullRegionIsImplicitlyUnwrapped(t *testing.T) {
	runGoldenFixture(t, assignPropertyFixture)
}

// Package snapshot compares values against JSON files stored under testdata/
package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

// UpdateEnv rewrites every snapshot when set to a non-empty value
const UpdateEnv = "SEOTDA_UPDATE_SNAPSHOTS"

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9_.-]+`)

var (
	lock  sync.Mutex
	calls = make(map[string]int)
)

// ValidateSnapshot asserts obj marshals to the JSON stored for the calling test
// Each call within a test gets its own file, a missing file is created
func ValidateSnapshot(t *testing.T, obj interface{}, msgAndArgs ...interface{}) {
	t.Helper()

	actual, err := json.MarshalIndent(obj, "", "  ")
	if err != nil {
		t.Fatalf("could not marshal snapshot: %v", err)
	}

	filename := nextFilename(t.Name())
	expects, err := os.ReadFile(filename)
	if os.IsNotExist(err) || (err == nil && os.Getenv(UpdateEnv) != "") {
		write(t, filename, actual)
		return
	}

	if err != nil {
		t.Fatalf("could not read snapshot %s: %v", filename, err)
	}

	if !assert.JSONEq(t, string(expects), string(actual), msgAndArgs...) {
		t.Logf("snapshot %s, rerun with %s=1 to update", filename, UpdateEnv)
	}
}

func nextFilename(testName string) string {
	name := unsafeChars.ReplaceAllString(testName, "_")

	lock.Lock()
	call := calls[name]
	calls[name] = call + 1
	lock.Unlock()

	return filepath.Join("testdata", fmt.Sprintf("%s-%d.json", name, call))
}

func write(t *testing.T, filename string, b []byte) {
	t.Helper()

	logrus.WithField("filename", filename).Info("writing snapshot file")
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		t.Fatalf("could not create snapshot directory: %v", err)
	}

	if err := os.WriteFile(filename, append(b, '\n'), 0644); err != nil {
		t.Fatalf("could not write snapshot: %v", err)
	}
}

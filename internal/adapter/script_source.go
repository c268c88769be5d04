package adapter

import (
	"fmt"
	"os"

	m "github.com/mouse-blink/ecslua/internal/model"
)

// DefaultScript runs when no script file is given. It walks the Transform of
// the current entity the same way a hand-written update script would.
const DefaultScript = `local tf = entity:get("Transform")
if tf == nil then
  return
end
print("Transform is: ", tf)
print("Transform.translation is: ", tf.translation)
local translation = tf.translation
print("Transform.translation.x is: ", translation.x)
local xval = translation:field("x"):clone()
print("XVal is: ", xval)
tf.translation.x = xval + deltaTime
`

// ScriptSource loads script text.
type ScriptSource interface {
	ReadScript(path m.Path) ([]byte, error)
}

// LocalScriptSource reads scripts from disk.
type LocalScriptSource struct{}

// NewLocalScriptSource constructs a LocalScriptSource.
func NewLocalScriptSource() *LocalScriptSource {
	return &LocalScriptSource{}
}

// ReadScript returns the script at path, or DefaultScript for an empty path.
func (s *LocalScriptSource) ReadScript(path m.Path) ([]byte, error) {
	if path == "" {
		return []byte(DefaultScript), nil
	}

	data, err := os.ReadFile(string(path))
	if err != nil {
		return nil, fmt.Errorf("failed to read script %s: %w", path, err)
	}

	return data, nil
}

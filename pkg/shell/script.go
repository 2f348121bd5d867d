package shell

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"src.mar.sh/pkg/diag"
	"src.mar.sh/pkg/eval"
	"src.mar.sh/pkg/parse"
)

// Configuration for the script mode.
type scriptCfg struct {
	Cmd         bool
	CompileOnly bool
	JSON        bool
}

// Executes a shell script.
func script(ev *eval.Evaler, fds [3]*os.File, args []string, cfg *scriptCfg) int {
	arg0 := args[0]

	var name, code string
	if cfg.Cmd {
		name = "code from -c"
		code = arg0
		ev.SetArgs("marsh", args[1:])
	} else {
		var err error
		name, err = filepath.Abs(arg0)
		if err != nil {
			fmt.Fprintf(fds[2],
				"cannot get full path of script %q: %v\n", arg0, err)
			return 2
		}
		code, err = readFileUTF8(name)
		if err != nil {
			fmt.Fprintf(fds[2], "cannot read script %q: %v\n", name, err)
			return 2
		}
		ev.SetArgs(arg0, args[1:])
	}

	src := parse.Source{Name: name, Code: code, IsFile: true}
	if cfg.CompileOnly {
		_, err := parse.Parse(src)
		if cfg.JSON {
			fmt.Fprintf(fds[1], "%s\n", errorsToJSON(err))
		} else if err != nil {
			diag.ShowError(fds[2], err)
		}
		if err != nil {
			return 2
		}
		return 0
	}

	err := evalInTTY(ev, fds, src)
	var exit eval.ExitStatus
	if errors.As(err, &exit) {
		return exit.Status
	}
	if err != nil {
		diag.ShowError(fds[2], err)
		return 2
	}
	return ev.Status()
}

var errSourceNotUTF8 = errors.New("source is not UTF-8")

func readFileUTF8(fname string) (string, error) {
	bytes, err := os.ReadFile(fname)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(bytes) {
		return "", errSourceNotUTF8
	}
	return string(bytes), nil
}

// An auxiliary struct for converting errors with diagnostics information to
// JSON.
type errorInJSON struct {
	FileName string `json:"fileName"`
	Start    int    `json:"start"`
	End      int    `json:"end"`
	Message  string `json:"message"`
}

// Converts parse errors into JSON.
func errorsToJSON(err error) []byte {
	converted := []errorInJSON{}
	for _, e := range parse.UnpackErrors(err) {
		converted = append(converted,
			errorInJSON{e.Context.Name, e.Context.From, e.Context.To, e.Message})
	}

	jsonError, errMarshal := json.Marshal(converted)
	if errMarshal != nil {
		return []byte(`[{"message":"Unable to convert the errors to JSON"}]`)
	}
	return jsonError
}

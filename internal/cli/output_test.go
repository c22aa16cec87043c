package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/bracket/internal/bracket"
	"github.com/roach88/bracket/internal/compiler"
	"github.com/roach88/bracket/internal/session"
	"github.com/roach88/bracket/internal/store"
)

func TestOutputFormatter_JSONSuccess(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "json", Writer: buf}

	err := formatter.Success(map[string]string{"result": "success"}, nil)
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.NotNil(t, resp.Data)
}

func TestOutputFormatter_TextSuccess(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "text", Writer: buf}

	require.NoError(t, formatter.Success("plain", nil))
	require.NoError(t, formatter.Success("ignored", func(w io.Writer) {
		fmt.Fprintln(w, "custom")
	}))
	assert.Equal(t, "plain\ncustom\n", buf.String())
}

func TestOutputFormatter_Error(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "text", Writer: buf, Verbose: true}

	require.NoError(t, formatter.Error("E001", "boom", "ctx"))
	assert.Equal(t, "Error [E001]: boom\nDetails: ctx\n", buf.String())
}

func TestOutputFormatter_VerboseLog(t *testing.T) {
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "json", Writer: out, ErrWriter: errOut}

	formatter.VerboseLog("hidden")
	formatter.Verbose = true
	formatter.VerboseLog("shown %d", 1)

	assert.Empty(t, out.String())
	assert.Equal(t, "shown 1\n", errOut.String())
}

func TestOutputFormatter_Fail(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "json", Writer: buf}

	err := formatter.Fail("cannot record", bracket.ErrState)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.ErrorIs(t, err, bracket.ErrState)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "STATE", resp.Error.Code)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		exit int
		code string
	}{
		{"bracket", fmt.Errorf("wrapped: %w", bracket.ErrValidation), ExitFailure, "VALIDATION"},
		{"replay", &session.ReplayError{SessionID: "s"}, ExitFailure, ErrCodeReplay},
		{"not found", fmt.Errorf("x: %w", store.ErrSessionNotFound), ExitCommandError, ErrCodeNotFound},
		{"compile", &compiler.CompileError{Field: "name"}, ExitCommandError, ErrCodeCompile},
		{"other", errors.New("disk on fire"), ExitCommandError, ErrCodeGeneric},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exit, code := classify(tt.err)
			assert.Equal(t, tt.exit, exit)
			assert.Equal(t, tt.code, code)
		})
	}
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitSuccess, GetExitCode(nil))
	assert.Equal(t, ExitFailure, GetExitCode(NewExitError(ExitFailure, "x")))
	assert.Equal(t, ExitCommandError, GetExitCode(fmt.Errorf("wrapped: %w", NewExitError(ExitCommandError, "x"))))
	assert.Equal(t, ExitCommandError, GetExitCode(errors.New("unknown flag")))
}

func TestExitError(t *testing.T) {
	inner := errors.New("inner")
	err := WrapExitError(ExitFailure, "outer", inner)
	assert.Equal(t, "outer: inner", err.Error())
	assert.ErrorIs(t, err, inner)
	assert.Equal(t, "plain", NewExitError(ExitFailure, "plain").Error())
}

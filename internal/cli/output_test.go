package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/sortscope/internal/config"
	"github.com/roach88/sortscope/internal/initiator"
	"github.com/roach88/sortscope/internal/playback"
	"github.com/roach88/sortscope/internal/sorter"
	"github.com/roach88/sortscope/internal/store"
)

func TestOutputFormatter_JSONSuccess(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "json",
		Writer: buf,
	}

	err := formatter.Success(map[string]int{"steps": 8})
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.NotNil(t, resp.Data)
	assert.Nil(t, resp.Error)
}

func TestOutputFormatter_JSONError(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "json",
		Writer: buf,
	}

	err := formatter.Error("INPUT_DOMAIN", "transposition initiator needs n >= 2", map[string]int{"n": 1})
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INPUT_DOMAIN", resp.Error.Code)
	assert.NotNil(t, resp.Error.Details)
}

func TestOutputFormatter_TextError(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format:  "text",
		Writer:  buf,
		Verbose: true,
	}

	err := formatter.Error("NOT_FOUND", "no such recording", "id=abc")
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Error [NOT_FOUND]: no such recording")
	assert.Contains(t, buf.String(), "Details: id=abc")
}

func TestOutputFormatter_VerboseLog(t *testing.T) {
	tests := []struct {
		name    string
		verbose bool
		wantLog bool
	}{
		{"verbose_enabled", true, true},
		{"verbose_disabled", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, diag := &bytes.Buffer{}, &bytes.Buffer{}
			formatter := &OutputFormatter{
				Format:    "json",
				Writer:    out,
				ErrWriter: diag,
				Verbose:   tt.verbose,
			}

			formatter.VerboseLog("recorded %d steps", 12)

			assert.Empty(t, out.String())
			if tt.wantLog {
				assert.Equal(t, "recorded 12 steps\n", diag.String())
			} else {
				assert.Empty(t, diag.String())
			}
		})
	}
}

func TestExitError(t *testing.T) {
	cause := errors.New("disk full")
	err := WrapExitError(ExitCommandError, "failed to open database", cause)

	assert.Equal(t, "failed to open database: disk full", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, ExitCommandError, GetExitCode(fmt.Errorf("wrapped: %w", err)))
	assert.Equal(t, ExitFailure, GetExitCode(cause))
	assert.Equal(t, "plain", NewExitError(ExitFailure, "plain").Error())
}

func TestErrorCode(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{&initiator.InputError{Initiator: "local", N: 1, Min: 2}, "INPUT_DOMAIN"},
		{fmt.Errorf("lookup: %w", initiator.ErrUnknownInitiator), "UNKNOWN_INITIATOR"},
		{fmt.Errorf("lookup: %w", sorter.ErrUnknownAlgorithm), "UNKNOWN_ALGORITHM"},
		{playback.ErrExhausted, "EXHAUSTED"},
		{&config.SchemaError{Code: config.ErrCodeInvalid, Details: []string{"x"}}, "SCHEMA_INVALID"},
		{fmt.Errorf("read: %w", store.ErrNotFound), "NOT_FOUND"},
		{store.ErrHashMismatch, "HASH_MISMATCH"},
		{errors.New("other"), "ERROR"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ErrorCode(tt.err), tt.err.Error())
	}
}

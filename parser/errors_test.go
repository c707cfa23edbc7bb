package parser

import (
	"context"
	"errors"
	"testing"

	"github.com/alecthomas/assert/v2"
	"golang.org/x/text/language"

	"github.com/robinvdvleuten/filescope/messages"
)

func TestParseErrorLocalize(t *testing.T) {
	_, err := ParseString(context.Background(), "file:1a")

	var perr *ParseError
	assert.True(t, errors.As(err, &perr))

	assert.Equal(t, "a unexpected at position 7", perr.Error())
	assert.Equal(t, "a unerwartet an Position 7", perr.Localize(messages.Printer(language.German)))
	assert.Equal(t, "a unexpected", perr.Message(messages.Default()))
}

func TestParseErrorWithoutArgs(t *testing.T) {
	_, err := ParseString(context.Background(), "file[x:y")

	var perr *ParseError
	assert.True(t, errors.As(err, &perr))
	assert.Equal(t, "']' expected at position 7", perr.Error())
	assert.Equal(t, "']' erwartet an Position 7", perr.Localize(messages.Printer(language.German)))
}

// Package messages holds the localized message catalog for scope parsing
// and scope file diagnostics.
//
// Diagnostics are identified by a Key and formatted with positional
// arguments. The catalog ships English and German texts; English is the
// fallback for any other language.
//
//	p := messages.Printer(language.German)
//	p.Sprintf(string(messages.KeyPatternExpected))
package messages

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Key identifies a diagnostic message in the catalog.
type Key string

const (
	// KeyTokenUnexpected reports a token that may not appear here.
	// Args: token text.
	KeyTokenUnexpected Key = "error.packageset.token.expectations"

	// KeyPatternExpected reports a fragment keyword with no pattern after it.
	KeyPatternExpected Key = "error.packageset.pattern.expectations"

	// KeyScopeExpected reports a position where no fragment keyword is recognized.
	KeyScopeExpected Key = "error.packageset.scope.expectations"

	// KeyColonExpected reports a fragment keyword not followed by ':'.
	KeyColonExpected Key = "error.packageset.colon.expectations"

	// KeyRBracketExpected reports an unterminated module pattern.
	KeyRBracketExpected Key = "error.packageset.rbracket.expectations"

	// KeyRParenExpected reports an unterminated parenthesized expression.
	KeyRParenExpected Key = "error.packageset.rparen.expectations"

	// KeyModuleExpected reports an empty module pattern.
	KeyModuleExpected Key = "error.packageset.module.expectations"

	// KeyPositionError wraps another message with its 1-based position.
	// Args: message, position.
	KeyPositionError Key = "error.packageset.position.parsing.error"

	// KeyDefinitionExpected reports a scope file line that is not a definition.
	KeyDefinitionExpected Key = "error.scopefile.definition.expectations"

	// KeyInvalidScopeName reports a definition whose name is not allowed.
	// Args: name.
	KeyInvalidScopeName Key = "error.scopefile.name.invalid"

	// KeyIncludeFilename reports an include directive with no file.
	KeyIncludeFilename Key = "error.scopefile.include.filename"

	// KeyDuplicateScope reports a name defined twice.
	// Args: name, position of the first definition.
	KeyDuplicateScope Key = "error.scopefile.scope.duplicate"
)

// Keys lists every diagnostic key in the catalog.
var Keys = []Key{
	KeyTokenUnexpected,
	KeyPatternExpected,
	KeyScopeExpected,
	KeyColonExpected,
	KeyRBracketExpected,
	KeyRParenExpected,
	KeyModuleExpected,
	KeyPositionError,
	KeyDefinitionExpected,
	KeyInvalidScopeName,
	KeyIncludeFilename,
	KeyDuplicateScope,
}

var texts = map[language.Tag]map[Key]string{
	language.English: {
		KeyTokenUnexpected:  "%s unexpected",
		KeyPatternExpected:  "Pattern expected",
		KeyScopeExpected:    "Scope keyword expected",
		KeyColonExpected:    "':' expected",
		KeyRBracketExpected: "']' expected",
		KeyRParenExpected:   "')' expected",
		KeyModuleExpected:   "Module pattern expected",
		KeyPositionError:    "%s at position %d",

		KeyDefinitionExpected: "expected 'name = expression'",
		KeyInvalidScopeName:   "invalid scope name %q",
		KeyIncludeFilename:    "include without filename",
		KeyDuplicateScope:     "scope %q already defined at %s",
	},
	language.German: {
		KeyTokenUnexpected:  "%s unerwartet",
		KeyPatternExpected:  "Muster erwartet",
		KeyScopeExpected:    "Bereichsschlüsselwort erwartet",
		KeyColonExpected:    "':' erwartet",
		KeyRBracketExpected: "']' erwartet",
		KeyRParenExpected:   "')' erwartet",
		KeyModuleExpected:   "Modulmuster erwartet",
		KeyPositionError:    "%s an Position %d",

		KeyDefinitionExpected: "'Name = Ausdruck' erwartet",
		KeyInvalidScopeName:   "ungültiger Bereichsname %q",
		KeyIncludeFilename:    "include ohne Dateiname",
		KeyDuplicateScope:     "Bereich %q bereits definiert in %s",
	},
}

// Supported lists the languages with a complete translation, English first.
var Supported = []language.Tag{language.English, language.German}

var cat = mustBuild()

func mustBuild() catalog.Catalog {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for _, tag := range Supported {
		for key, text := range texts[tag] {
			if err := b.SetString(tag, string(key), text); err != nil {
				panic(fmt.Sprintf("messages: %s/%s: %v", tag, key, err))
			}
		}
	}
	return b
}

var matcher = language.NewMatcher(Supported)

// Printer returns a printer for the closest supported language.
func Printer(tag language.Tag) *message.Printer {
	_, idx, _ := matcher.Match(tag)
	return message.NewPrinter(Supported[idx], message.Catalog(cat))
}

// Lookup returns a printer for a BCP 47 language name such as "de" or "en-US".
// Unknown or malformed names fall back to English.
func Lookup(name string) *message.Printer {
	tag, err := language.Parse(name)
	if err != nil {
		return Default()
	}
	return Printer(tag)
}

var defaultPrinter = Printer(language.English)

// Default returns the English printer.
func Default() *message.Printer {
	return defaultPrinter
}

// Sprintf formats the message for key with p.
func Sprintf(p *message.Printer, key Key, args ...any) string {
	return p.Sprintf(string(key), args...)
}

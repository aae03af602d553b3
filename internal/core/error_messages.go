package core

// error_messages.go maps technical errors to user-friendly messages with
// support codes. Users quote the code; support looks up the logged
// technical error for the same request ID.
//
// # Document Errors (DOC001-DOC099)
//
//	DOC001 - File too large: Schedule document exceeds the size limit
//	         Patterns: "file too large"
//	DOC002 - Not text: Schedule document is not a text file
//	         Patterns: "not a text document"
//	DOC003 - Missing document: Schedule document not found
//	         Patterns: "no such file", "cannot find the file"
//	DOC004 - Unreadable: Schedule document could not be read
//	         Patterns: "permission denied", "read document"
//
// # Schedule Errors (SCH001-SCH099)
//
//	SCH001 - Department not found
//	SCH002 - Phase not found
//	SCH003 - Reload failed (fallback for other reload errors)
//
// # Request Errors (REQ001-REQ099)
//
//	REQ001 - Invalid parameter
//	REQ002 - Request cancelled
//	REQ003 - Request timed out
//
// RATE001 and AUTH001/AUTH002 cover rate limiting and API key checks.
// ERR000 is the fallback when nothing matches.

import (
	"fmt"
	"strings"
)

// UserMessage is the user-facing side of an error.
type UserMessage struct {
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
	Code    string `json:"code"`
}

type errorPattern struct {
	pattern string
	msg     UserMessage
}

// errorPatterns is checked in order; more specific patterns come first.
var errorPatterns = []errorPattern{
	// Document errors
	{
		pattern: "file too large",
		msg: UserMessage{
			Message: "Harmonogram je příliš velký",
			Action:  "Zkontrolujte, že byl exportován správný soubor",
			Code:    "DOC001",
		},
	},
	{
		pattern: "not a text document",
		msg: UserMessage{
			Message: "Soubor harmonogramu není textový dokument",
			Action:  "Exportujte harmonogram jako CSV v kódování UTF-8",
			Code:    "DOC002",
		},
	},
	{
		pattern: "no such file",
		msg: UserMessage{
			Message: "Soubor harmonogramu nebyl nalezen",
			Action:  "Zkontrolujte nastavení SCHEDULE_FILE",
			Code:    "DOC003",
		},
	},
	{
		pattern: "cannot find the file",
		msg: UserMessage{
			Message: "Soubor harmonogramu nebyl nalezen",
			Action:  "Zkontrolujte nastavení SCHEDULE_FILE",
			Code:    "DOC003",
		},
	},
	{
		pattern: "permission denied",
		msg: UserMessage{
			Message: "Soubor harmonogramu nelze přečíst",
			Action:  "Zkontrolujte přístupová práva k souboru",
			Code:    "DOC004",
		},
	},
	{
		pattern: "read document",
		msg: UserMessage{
			Message: "Soubor harmonogramu nelze přečíst",
			Action:  "Zkuste to prosím znovu",
			Code:    "DOC004",
		},
	},

	// Schedule lookups
	{
		pattern: "department not found",
		msg: UserMessage{
			Message: "Oddělení nebylo nalezeno",
			Action:  "Vraťte se na výběr oddělení",
			Code:    "SCH001",
		},
	},
	{
		pattern: "phase not found",
		msg: UserMessage{
			Message: "Fáze nebyla nalezena",
			Action:  "Vyberte fázi z časové osy oddělení",
			Code:    "SCH002",
		},
	},

	// Request errors
	{
		pattern: "invalid parameter",
		msg: UserMessage{
			Message: "Neplatný požadavek",
			Action:  "Zkontrolujte zadané hodnoty",
			Code:    "REQ001",
		},
	},
	{
		pattern: "context canceled",
		msg: UserMessage{
			Message: "Požadavek byl zrušen",
			Action:  "Zkuste to prosím znovu",
			Code:    "REQ002",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "Vypršel časový limit požadavku",
			Action:  "Zkuste to prosím znovu",
			Code:    "REQ003",
		},
	},
	{
		pattern: "reload schedule",
		msg: UserMessage{
			Message: "Harmonogram se nepodařilo znovu načíst",
			Action:  "Zobrazuje se poslední platná verze. Kontaktujte správce",
			Code:    "SCH003",
		},
	},

	// Rate limiting and auth
	{
		pattern: "rate limit",
		msg: UserMessage{
			Message: "Příliš mnoho požadavků",
			Action:  "Počkejte chvíli a zkuste to znovu",
			Code:    "RATE001",
		},
	},
	{
		pattern: "missing api key",
		msg: UserMessage{
			Message: "Chybí API klíč",
			Action:  "Pošlete klíč v hlavičce X-API-Key",
			Code:    "AUTH001",
		},
	},
	{
		pattern: "invalid api key",
		msg: UserMessage{
			Message: "Neplatný API klíč",
			Action:  "Ověřte klíč u správce",
			Code:    "AUTH002",
		},
	},
}

// defaultMessage is returned when no pattern matches (ERR000).
var defaultMessage = UserMessage{
	Message: "Došlo k neočekávané chybě",
	Action:  "Zkuste to prosím znovu nebo kontaktujte podporu",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
// Patterns match case-insensitively against the full error chain text;
// the first match wins.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	errStr := strings.ToLower(err.Error())

	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}

// FormatUserError formats an error as "Message (Kód: XXX). Action".
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Kód: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err maps to a specific message rather than ERR000.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}

package ocr

import "regexp"

// Tesseract misreads punctuation inside numbers on low-contrast scans:
// periods come out as semicolons or colons, and stray colons trail amounts.
var (
	semicolonInNumber = regexp.MustCompile(`(\d);(\s*)(\d)`)
	colonInNumber     = regexp.MustCompile(`(\d):(\d)`)
	trailingColonMid  = regexp.MustCompile(`(\d):(\s)`)
	trailingColonEnd  = regexp.MustCompile(`(?m)(\d):$`)
)

// sanitize fixes common OCR misreads in recognized text so the downstream
// amount and date grammars can match. "19,720; 15" becomes "19,720.15".
// Operates on whole-page text, so the stray-colon rule keeps the matched
// whitespace intact: line boundaries must survive.
func sanitize(text string) string {
	text = semicolonInNumber.ReplaceAllString(text, "$1.$3")
	text = colonInNumber.ReplaceAllString(text, "$1.$2")
	text = trailingColonMid.ReplaceAllString(text, "$1$2")
	text = trailingColonEnd.ReplaceAllString(text, "$1")
	return text
}

package diff

import "regexp"

// Taggers are independent predicates and counters over a file's added lines.
// Each is pure: no shared state, safe to combine and to run concurrently.

var (
	functionPattern = regexp.MustCompile(`(?i)\b(?:func|function|def|fn)\s+\w+|=>\s*\{|^\s*(?:public|private|protected)\s+\w+\s*\(`)
	classPattern    = regexp.MustCompile(`\bclass\s+[A-Z_]\w*`)
	typeDeclPattern = regexp.MustCompile(`\b(?:interface|type|struct|enum|trait|protocol)\s+[A-Z_]\w*`)
	apiRoutePattern = regexp.MustCompile(`(?i)\b(?:router|app|mux|r)\.(?:get|post|put|patch|delete|handle(?:func)?)\s*\(|["'\x60]/api/|@(?:Get|Post|Put|Patch|Delete)Mapping|\bendpoint\b`)
	schemaPattern   = regexp.MustCompile(`(?i)\bschema\b|\bmodel\b|\bmigration\b|\bCREATE TABLE\b|\bALTER TABLE\b|\bforeign key\b`)
	stateHookPattern = regexp.MustCompile(`\buse(?:State|Effect|Reducer|Context|Memo|Callback|Ref)\s*\(|\bthis\.setState\b|\bcreateStore\b|\buseSelector\b|\bdispatch\s*\(`)
	stylingPattern  = regexp.MustCompile(`(?i)className\s*=|styled\.|@media\b|\b(?:margin|padding|font-size|background-color)\s*:|\btailwind\b`)
	securityPattern = regexp.MustCompile(`(?i)\b(?:password|passwd|secret|token|api[_-]?key|credential|auth(?:entication|orization)?|login|oauth|jwt|private[_-]?key)\b`)
	asyncPattern    = regexp.MustCompile(`(?i)\basync\b|\bawait\b|\bpromise\b|\bgo func\b|\bgoroutine\b|\bchan\b|\bsync\.(?:Mutex|WaitGroup|Once)\b`)
	businessPattern = regexp.MustCompile(`(?i)\b(?:service|controller|handler|usecase|repository|workflow|transaction|invoice|billing|payment|order|customer|account)\b`)

	// Credential-like assignments. Lines matching this are flagged so the
	// composer never surfaces them in example snippets.
	credentialPattern = regexp.MustCompile(`(?i)(?:password|passwd|secret|token|api[_-]?key|private[_-]?key)\s*[:=]\s*["'\x60][^"'\x60]+["'\x60]`)
)

func countMatches(lines []string, rx *regexp.Regexp) int {
	n := 0
	for _, l := range lines {
		if rx.MatchString(l) {
			n++
		}
	}
	return n
}

func anyMatch(lines []string, rx *regexp.Regexp) bool {
	for _, l := range lines {
		if rx.MatchString(l) {
			return true
		}
	}
	return false
}

// CountFunctions counts added lines introducing function or method definitions.
func CountFunctions(lines []string) int { return countMatches(lines, functionPattern) }

// CountClasses counts added lines introducing class definitions.
func CountClasses(lines []string) int { return countMatches(lines, classPattern) }

// CountTypeDecls counts added interface/type/struct declarations.
func CountTypeDecls(lines []string) int { return countMatches(lines, typeDeclPattern) }

// HasAPIRoutes reports whether the added lines reference routes or endpoints.
func HasAPIRoutes(lines []string) bool { return anyMatch(lines, apiRoutePattern) }

// HasSchemaChanges reports whether the added lines touch data models or schemas.
func HasSchemaChanges(lines []string) bool { return anyMatch(lines, schemaPattern) }

// HasStateHooks reports whether the added lines use UI state-management idioms.
func HasStateHooks(lines []string) bool { return anyMatch(lines, stateHookPattern) }

// HasStyling reports whether the added lines carry styling idioms.
func HasStyling(lines []string) bool { return anyMatch(lines, stylingPattern) }

// HasSecurityKeywords reports whether the added lines mention security-
// sensitive concepts. This is a flagging signal, not a secret detector.
func HasSecurityKeywords(lines []string) bool { return anyMatch(lines, securityPattern) }

// HasAsyncOps reports whether the added lines use async or concurrency idioms.
func HasAsyncOps(lines []string) bool { return anyMatch(lines, asyncPattern) }

// HasBusinessLogic reports whether the added lines reference business-logic
// vocabulary.
func HasBusinessLogic(lines []string) bool { return anyMatch(lines, businessPattern) }

// CredentialLineIndices returns the indices of added lines that look like
// hardcoded credential assignments. Such lines must never appear in example
// snippet output.
func CredentialLineIndices(lines []string) map[int]bool {
	flagged := make(map[int]bool)
	for i, l := range lines {
		if credentialPattern.MatchString(l) {
			flagged[i] = true
		}
	}
	return flagged
}

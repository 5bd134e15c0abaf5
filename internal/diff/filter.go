package diff

import "regexp"

// Paths matching these patterns are kept out of the per-file narrative but
// still counted in aggregate statistics. Taggers are never run on them.
var excludePatternMap = map[string]string{
	"package-lock":   `package-lock\.json$`,
	"yarn-lock":      `yarn\.lock$`,
	"pnpm-lock":      `pnpm-lock\.yaml$`,
	"npm-shrinkwrap": `npm-shrinkwrap\.json$`,
	"go-sum":         `go\.sum$`,
	"vendor":         `(^|/)vendor/`,
	"node-modules":   `(^|/)node_modules/`,
	"build-output":   `(^|/)(dist|build|out|target)/`,
	"minified":       `\.min\.(js|css)$`,
	"source-maps":    `\.js\.map$`,
	"logs":           `\.log$`,
	"env-files":      `(^|/)\.env(\..+)?$`,
	"lockfiles":      `\.lock$`,
	"snapshots":      `\.snap$`,
	"generated-go":   `\.(?:pb|pb\.gw)\.go$`,
}

func buildExcludePatterns() map[string]*regexp.Regexp {
	compiled := make(map[string]*regexp.Regexp, len(excludePatternMap))
	for reason, pattern := range excludePatternMap {
		compiled[reason] = regexp.MustCompile(pattern)
	}
	return compiled
}

func shouldExcludePath(path string, patterns map[string]*regexp.Regexp) (bool, string) {
	for reason, rx := range patterns {
		if rx.MatchString(path) {
			return true, reason
		}
	}
	return false, ""
}

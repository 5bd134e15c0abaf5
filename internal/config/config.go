package config

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func Init(root *cobra.Command) {
	viper.AutomaticEnv()
	_ = godotenv.Load(".prscribe.env")
	if root != nil {
		_ = viper.BindPFlags(root.PersistentFlags())
	}
	setDefaults()
}

func setDefaults() {
	viper.SetDefault(KeyLogLevel, "info")
	viper.SetDefault(KeyRepoPath, ".")
	viper.SetDefault(KeyOutputDir, ".")
	viper.SetDefault(KeyGitRemote, "origin")
	viper.SetDefault(KeyHistoryEnabled, false)
	viper.SetDefault(KeyAutoMigrate, false)
	viper.SetDefault(KeyMaxDiffBytes, 5*1024*1024)
	viper.SetDefault(KeyMaxLinesPerFile, 1000)
	viper.SetDefault(KeyMaxNarrativeFiles, 20)
	viper.SetDefault(KeyResponseCharLimit, 4800)
	viper.SetDefault(KeyDetailLevel, "basic")
}

func LogLevel() string       { return viper.GetString(KeyLogLevel) }
func RepoPath() string       { return viper.GetString(KeyRepoPath) }
func OutputDir() string      { return viper.GetString(KeyOutputDir) }
func TemplatesFile() string  { return viper.GetString(KeyTemplatesFile) }
func GitHubToken() string    { return viper.GetString(KeyGitHubToken) }
func GitRemote() string      { return viper.GetString(KeyGitRemote) }
func HistoryEnabled() bool   { return viper.GetBool(KeyHistoryEnabled) }
func PostgresURL() string    { return viper.GetString(KeyPostgresURL) }
func AutoMigrate() bool      { return viper.GetBool(KeyAutoMigrate) }
func MaxDiffBytes() int      { return viper.GetInt(KeyMaxDiffBytes) }
func MaxLinesPerFile() int   { return viper.GetInt(KeyMaxLinesPerFile) }
func MaxNarrativeFiles() int { return viper.GetInt(KeyMaxNarrativeFiles) }
func ResponseCharLimit() int { return viper.GetInt(KeyResponseCharLimit) }
func DetailLevel() string    { return viper.GetString(KeyDetailLevel) }

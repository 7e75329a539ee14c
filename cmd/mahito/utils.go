package mahito

import (
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/victormicco/mahito/internal/audit"
	"github.com/victormicco/mahito/internal/config"
	"github.com/victormicco/mahito/internal/engine"
	"github.com/victormicco/mahito/internal/logging"
	"github.com/victormicco/mahito/internal/types"
	"golang.org/x/term"
)

// session is everything one command run needs, resolved from flags and
// config files.
type session struct {
	opts    types.CleanOptions
	log     *logrus.Logger
	closer  io.Closer
	journal *audit.Journal // nil when disabled
}

func (s *session) Close() {
	if s.closer != nil {
		_ = s.closer.Close()
	}
}

func (s *session) cleaner() *engine.Cleaner {
	return engine.New(s.opts, engine.WithLogger(s.log))
}

// loadConfigs returns the merged local (from dir) and global config. A local
// file lives in the tree being cleaned and cannot turn on the admin step;
// that takes the --admin flag or the global config.
func loadConfigs(dir string) config.FileConfig {
	var gcfg, lcfg config.FileConfig
	if c, err := config.LoadGlobal(); err == nil {
		gcfg = c
	}
	if c, err := config.LoadLocal(dir); err == nil {
		lcfg = c
		lcfg.Admin = nil
	}
	return config.Merge(lcfg, gcfg)
}

// configDir is where the local config for target is looked up: the target
// itself for directories, its parent for files.
func configDir(target string) string {
	abs, err := filepath.Abs(target)
	if err != nil {
		return "."
	}
	if st, err := os.Stat(abs); err == nil && !st.IsDir() {
		return filepath.Dir(abs)
	}
	return abs
}

// newSession applies precedence CLI > local > global.
func newSession(target string, stderr io.Writer) (*session, error) {
	fc := loadConfigs(configDir(target))

	opts := fc.Apply(types.AllOptions())
	if flagNoTimestamps {
		opts.ClearTimestamps = false
	}
	if flagNoStreams {
		opts.ClearStreams = false
	}
	if flagNoAttributes {
		opts.ClearAttributes = false
	}
	if flagNoProperties {
		opts.ClearProperties = false
	}
	opts = opts.
		WithAdmin(pickBool(flagAdmin, fc.Admin, nil)).
		WithVerifyContent(pickBool(flagVerify, fc.Verify, nil)).
		WithDryRun(flagDryRun).
		WithVerbose(flagVerbose).
		WithGlobs(pickString(flagInclude, fc.Include, nil), pickString(flagExclude, fc.Exclude, nil))

	lcfg := logging.DefaultConfig()
	lcfg.Level = pickString(flagLogLevel, fc.LogLevel, nil)
	if lcfg.Level == "" {
		lcfg.Level = "warn"
		if flagVerbose {
			lcfg.Level = "debug"
		}
	}
	if f := pickString(flagLogFormat, fc.LogFormat, nil); f != "" {
		lcfg.Format = f
	}
	lcfg.FilePath = pickString(flagLogFile, fc.LogFile, nil)
	lcfg.Console = stderr
	log, closer, err := logging.New(lcfg)
	if err != nil {
		return nil, err
	}

	s := &session{opts: opts, log: log, closer: closer}
	// off unless asked for: the journal lists the paths that were cleaned
	if pickBool(flagJournal, fc.Journal, nil) {
		if p, err := audit.DefaultPath(); err == nil {
			s.journal = audit.NewJournal(p)
		}
	}
	return s, nil
}

func pickString(cli string, local, global *string) string {
	if cli != "" {
		return cli
	}
	if local != nil && *local != "" {
		return *local
	}
	if global != nil && *global != "" {
		return *global
	}
	return ""
}

func pickBool(cli bool, local, global *bool) bool {
	if cli {
		return true
	}
	if local != nil {
		return *local
	}
	if global != nil {
		return *global
	}
	return false
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

package systemd

import (
	"context"
	"strconv"
	"strings"

	"github.com/trellisnet/nodectl/internal/config"
	"github.com/trellisnet/nodectl/internal/execx"
	"github.com/trellisnet/nodectl/internal/log"
)

// Journal implements JournalReader by shelling out to journalctl.
// The systemd D-Bus API does not provide log retrieval.
type Journal struct {
	runner         execx.Runner
	configProvider config.Provider
	logger         log.Logger
}

// NewJournal creates a journal reader with injected dependencies.
func NewJournal(runner execx.Runner, configProvider config.Provider, logger log.Logger) *Journal {
	return &Journal{
		runner:         runner,
		configProvider: configProvider,
		logger:         logger,
	}
}

// Tail returns the last n journal lines for the unit.
func (j *Journal) Tail(ctx context.Context, unitName string, n int) (string, error) {
	if n <= 0 {
		n = j.configProvider.GetConfig().LogLines
	}

	unitFlag := "--unit"
	if j.configProvider.GetConfig().UserMode {
		unitFlag = "--user-unit"
	}

	j.logger.Debug("Reading journal", "unit", unitName, "lines", n)

	output, err := j.runner.CombinedOutput(ctx, "journalctl",
		unitFlag, unitName, "-n", strconv.Itoa(n), "--no-pager", "--output=short-precise")
	if err != nil {
		return "", NewError("logs", unitName, err)
	}

	return strings.TrimRight(string(output), "\n"), nil
}

package mappingfile

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/opbridge/op-rc-bridge/domain/mapping"
)

// A malformed source is fatal at startup; a missing file only degrades the
// corresponding table to empty.
var (
	ErrSchema = errors.New("mapping csv schema error")
	ErrFormat = errors.New("mapping csv format error")
)

const (
	usersKeyColumn   = "openproject_user"
	usersValueColumn = "rocketchat_user"

	projectsKeyColumn   = "project_identifier"
	projectsValueColumn = "rc_channel"
)

// Load builds the identity/channel mapping table from the two CSV sources.
func Load(usersPath, projectsPath, defaultChannel string, log *slog.Logger) (*mapping.Table, error) {
	users, err := loadTable(usersPath, usersKeyColumn, usersValueColumn, log)
	if err != nil {
		return nil, fmt.Errorf("load users mapping: %w", err)
	}

	projects, err := loadTable(projectsPath, projectsKeyColumn, projectsValueColumn, log)
	if err != nil {
		return nil, fmt.Errorf("load projects mapping: %w", err)
	}

	log.Info("Mappings loaded",
		slog.Int("users", len(users)),
		slog.Int("projects", len(projects)),
	)

	return mapping.New(users, projects, defaultChannel), nil
}

func loadTable(path, keyColumn, valueColumn string, log *slog.Logger) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Warn("Mapping file not found, table loads empty",
				slog.String("path", path),
			)
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("%w: open %s: %v", ErrFormat, path, err)
	}
	defer func() { _ = f.Close() }()

	reader := csv.NewReader(f)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: %s is empty", ErrFormat, path)
		}
		return nil, fmt.Errorf("%w: read header of %s: %v", ErrFormat, path, err)
	}

	keyIdx, valueIdx := -1, -1
	for i, col := range header {
		switch strings.TrimSpace(col) {
		case keyColumn:
			keyIdx = i
		case valueColumn:
			valueIdx = i
		}
	}
	if keyIdx < 0 || valueIdx < 0 {
		return nil, fmt.Errorf("%w: %s must contain columns %q and %q", ErrSchema, path, keyColumn, valueColumn)
	}

	table := make(map[string]string)
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: parse %s: %v", ErrFormat, path, err)
		}
		if keyIdx >= len(record) || valueIdx >= len(record) {
			return nil, fmt.Errorf("%w: parse %s: short record", ErrFormat, path)
		}

		key := strings.TrimSpace(record[keyIdx])
		if key == "" {
			continue
		}
		// Duplicate keys: last row wins.
		table[key] = strings.TrimSpace(record[valueIdx])
	}

	return table, nil
}

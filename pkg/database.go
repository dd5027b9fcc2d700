package multigrid

import (
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	sqlx "github.com/jmoiron/sqlx" //make alias name the package to sqlx
)

func ConnectToDatabase(user string, pass string, host string, dbname string) (*sqlx.DB, error) {
	port := "3306"
	dbURI := fmt.Sprintf("%s:%s@(%s:%s)/%s?parseTime=true", user, pass, host, port, dbname)
	db, err := sqlx.Connect("mysql", dbURI)
	return db, err
}

type channelMappingRow struct {
	ChipID    int64         `db:"ChipID"`
	Channel   int64         `db:"Channel"`
	MGChannel sql.NullInt64 `db:"MGChannel"`
}

// LoadChannelMap reads the VMM to Multi-Grid channel table valid for runNumber.
func LoadChannelMap(db *sqlx.DB, runNumber int) (*ChannelMap, error) {
	query := db.Rebind("SELECT ChipID, Channel, MGChannel FROM VmmChannelMapping " +
		"WHERE MinRun <= ? AND MaxRun >= ? ORDER BY ChipID, Channel")

	if configuration.Verbosity > 0 {
		logger.Info("Channel mapping read from DB", "database")
	}
	if configuration.Verbosity > 2 {
		message := fmt.Sprintf("Query: %s (run %d)", query, runNumber)
		logger.Info(message, "database")
	}

	rows, err := db.Queryx(query, runNumber, runNumber)
	if err != nil {
		errMessage := fmt.Errorf("error querying database: %w", err)
		return nil, errMessage
	}
	defer rows.Close()

	entries := make([]MappingEntry, 0)
	for rows.Next() {
		result := channelMappingRow{}
		err := rows.StructScan(&result)
		if err != nil {
			errMessage := fmt.Errorf("error scanning DB row: %w", err)
			return nil, errMessage
		}
		entries = append(entries, MappingEntry{
			ChipID:    result.ChipID,
			Channel:   result.Channel,
			MGChannel: result.MGChannel.Int64,
			Mapped:    result.MGChannel.Valid,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error reading DB rows: %w", err)
	}

	channelMap, err := NewChannelMap(entries)
	if err != nil {
		return nil, fmt.Errorf("error building channel map for run %d: %w", runNumber, err)
	}
	if configuration.Verbosity > 0 {
		message := fmt.Sprintf("Channel map for run %d has %d entries", runNumber, channelMap.Len())
		logger.Info(message, "database")
	}
	return channelMap, nil
}

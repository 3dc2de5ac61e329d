package store

import (
	"context"
	"fmt"
)

const createSwimmersTableSQL = `
CREATE TABLE IF NOT EXISTS %s (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	name VARCHAR(255) NOT NULL,
	graduating_year INT NOT NULL,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	UNIQUE KEY uk_name (name)
) ENGINE=InnoDB;
`

const createMeetsTableSQL = `
CREATE TABLE IF NOT EXISTS %s (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	name VARCHAR(255) NOT NULL,
	location VARCHAR(255) NOT NULL DEFAULT '',
	meet_date DATE NOT NULL,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	INDEX idx_meet_date (meet_date)
) ENGINE=InnoDB;
`

const createPerformancesTableSQL = `
CREATE TABLE IF NOT EXISTS %s (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	swimmer_id BIGINT NOT NULL,
	meet_id BIGINT NOT NULL,
	event VARCHAR(32) NOT NULL,
	swim_type VARCHAR(16) NOT NULL,
	start_type VARCHAR(16) NOT NULL,
	time_seconds DOUBLE NOT NULL,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	INDEX idx_meet_swimmer (meet_id, swimmer_id),
	INDEX idx_event (event, swim_type, start_type),
	FOREIGN KEY (swimmer_id) REFERENCES %s(id),
	FOREIGN KEY (meet_id) REFERENCES %s(id)
) ENGINE=InnoDB;
`

const createRelaysTableSQL = `
CREATE TABLE IF NOT EXISTS %s (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	relay_type VARCHAR(16) NOT NULL,
	leg1_id BIGINT NOT NULL,
	leg2_id BIGINT NOT NULL,
	leg3_id BIGINT NOT NULL,
	leg4_id BIGINT NOT NULL,
	time_seconds DOUBLE NOT NULL,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	UNIQUE KEY uk_leg1 (leg1_id),
	FOREIGN KEY (leg1_id) REFERENCES %s(id),
	FOREIGN KEY (leg2_id) REFERENCES %s(id),
	FOREIGN KEY (leg3_id) REFERENCES %s(id),
	FOREIGN KEY (leg4_id) REFERENCES %s(id)
) ENGINE=InnoDB;
`

// SchemaStatements returns the CREATE TABLE statements in dependency order.
func (s *Store) SchemaStatements() []string {
	t := s.tables
	return []string{
		fmt.Sprintf(createSwimmersTableSQL, t.swimmers),
		fmt.Sprintf(createMeetsTableSQL, t.meets),
		fmt.Sprintf(createPerformancesTableSQL, t.performances, t.swimmers, t.meets),
		fmt.Sprintf(createRelaysTableSQL, t.relays, t.performances, t.performances, t.performances, t.performances),
	}
}

// InitializeSchema creates any missing tables. It is idempotent.
func (s *Store) InitializeSchema(ctx context.Context) error {
	for _, stmt := range s.SchemaStatements() {
		if _, err := s.q.ExecContext(ctx, stmt); err != nil {
			return storageError("store.InitializeSchema", err)
		}
	}
	s.logger.Info("Records schema initialized")
	return nil
}

package database

import (
	"context"
	"database/sql"
)

// schema holds the DDL for all tables owned by this service. Each
// statement is idempotent (CREATE TABLE IF NOT EXISTS) so Migrate can
// run on every boot. Two constraints matter for correctness and are
// enforced here rather than in application code:
//
//   - bookings.reference carries a UNIQUE index; the insert path
//     regenerates the reference on a duplicate-key error.
//   - wishlist_entries has a UNIQUE index on (user_id, event_id) so
//     duplicate adds resolve to the existing row.
//
// The seat counters live on the events row; the CHECK keeps
// available_seats inside [0, total_seats] behind the conditional
// UPDATEs in the repository layer.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		email         VARCHAR(255) NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		name          VARCHAR(120) NOT NULL,
		role          VARCHAR(16)  NOT NULL DEFAULT 'USER',
		is_active     TINYINT(1)   NOT NULL DEFAULT 1,
		is_verified   TINYINT(1)   NOT NULL DEFAULT 0,
		phone         VARCHAR(32)  NULL,
		avatar_url    VARCHAR(512) NULL,
		created_at    DATETIME     NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at    DATETIME     NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		UNIQUE KEY uq_users_email (email)
	) ENGINE=InnoDB`,

	`CREATE TABLE IF NOT EXISTS refresh_tokens (
		id         BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		user_id    BIGINT UNSIGNED NOT NULL,
		token_hash CHAR(64)  NOT NULL,
		expires_at DATETIME  NOT NULL,
		revoked_at DATETIME  NULL,
		created_at DATETIME  NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uq_refresh_tokens_hash (token_hash),
		KEY idx_refresh_tokens_user (user_id),
		CONSTRAINT fk_refresh_tokens_user FOREIGN KEY (user_id) REFERENCES users(id)
	) ENGINE=InnoDB`,

	`CREATE TABLE IF NOT EXISTS events (
		id              BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		organizer_id    BIGINT UNSIGNED NOT NULL,
		organizer_name  VARCHAR(120) NOT NULL,
		title           VARCHAR(200) NOT NULL,
		description     TEXT         NOT NULL,
		category        VARCHAR(32)  NOT NULL,
		starts_at       DATETIME     NOT NULL,
		location        VARCHAR(255) NOT NULL,
		latitude        DOUBLE       NULL,
		longitude       DOUBLE       NULL,
		price_cents     BIGINT       NOT NULL,
		total_seats     INT          NOT NULL,
		available_seats INT          NOT NULL,
		status          VARCHAR(16)  NOT NULL DEFAULT 'PENDING',
		admin_note      VARCHAR(500) NOT NULL DEFAULT '',
		reviewed_by     BIGINT UNSIGNED NULL,
		reviewed_at     DATETIME     NULL,
		is_featured     TINYINT(1)   NOT NULL DEFAULT 0,
		is_active       TINYINT(1)   NOT NULL DEFAULT 1,
		rating          DOUBLE       NOT NULL DEFAULT 0,
		review_count    INT          NOT NULL DEFAULT 0,
		created_at      DATETIME     NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at      DATETIME     NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		KEY idx_events_status_active (status, is_active),
		KEY idx_events_organizer (organizer_id),
		CONSTRAINT fk_events_organizer FOREIGN KEY (organizer_id) REFERENCES users(id),
		CONSTRAINT chk_events_seats CHECK (available_seats >= 0 AND available_seats <= total_seats)
	) ENGINE=InnoDB`,

	`CREATE TABLE IF NOT EXISTS bookings (
		id                BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		reference         VARCHAR(32)  NOT NULL,
		user_id           BIGINT UNSIGNED NOT NULL,
		event_id          BIGINT UNSIGNED NOT NULL,
		seats             INT          NOT NULL,
		total_price_cents BIGINT       NOT NULL,
		status            VARCHAR(16)  NOT NULL DEFAULT 'CONFIRMED',
		payment_id        VARCHAR(128) NULL,
		notes             VARCHAR(500) NULL,
		created_at        DATETIME     NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at        DATETIME     NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		UNIQUE KEY uq_bookings_reference (reference),
		KEY idx_bookings_user (user_id),
		KEY idx_bookings_event (event_id),
		CONSTRAINT fk_bookings_user FOREIGN KEY (user_id) REFERENCES users(id)
	) ENGINE=InnoDB`,

	`CREATE TABLE IF NOT EXISTS wishlist_entries (
		id         BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		user_id    BIGINT UNSIGNED NOT NULL,
		event_id   BIGINT UNSIGNED NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uq_wishlist_user_event (user_id, event_id),
		CONSTRAINT fk_wishlist_user FOREIGN KEY (user_id) REFERENCES users(id)
	) ENGINE=InnoDB`,
}

// Migrate applies the schema in order. Statements are idempotent so
// repeated calls are safe.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

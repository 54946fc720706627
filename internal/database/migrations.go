// ===============================
// internal/database/migrations.go - Video Platform Schema
// ===============================

package database

import (
	"fmt"
	"log"

	"github.com/jmoiron/sqlx"
)

func RunMigrations(db *sqlx.DB) error {
	log.Println("📄 Running video platform migrations...")

	// Check if migrations table exists
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS migrations (
			id SERIAL PRIMARY KEY,
			version VARCHAR(255) UNIQUE NOT NULL,
			applied_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	migrations := []Migration{
		{
			Version: "001_users_and_videos",
			Query: `
				-- Users table - credential-based accounts
				CREATE TABLE IF NOT EXISTS users (
					id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					username VARCHAR(50) UNIQUE NOT NULL,
					email VARCHAR(255) UNIQUE NOT NULL,
					full_name VARCHAR(100) NOT NULL,
					password_hash TEXT NOT NULL,
					avatar_url TEXT NOT NULL DEFAULT '',
					cover_image_url TEXT DEFAULT '',
					refresh_token TEXT,
					created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
					updated_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
				);

				-- Videos table - core content
				CREATE TABLE IF NOT EXISTS videos (
					id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					owner_id UUID NOT NULL,
					title VARCHAR(255) NOT NULL,
					description TEXT DEFAULT '',
					video_url TEXT NOT NULL,
					thumbnail_url TEXT NOT NULL,
					duration DOUBLE PRECISION DEFAULT 0,
					views BIGINT DEFAULT 0,
					is_published BOOLEAN DEFAULT true,
					created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
					updated_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
				);

				-- Watch history - append order preserved by position
				CREATE TABLE IF NOT EXISTS watch_history (
					position BIGSERIAL PRIMARY KEY,
					user_id UUID NOT NULL,
					video_id UUID NOT NULL,
					watched_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
					UNIQUE(user_id, video_id)
				);
			`,
		},
		{
			Version: "002_comments_and_tweets",
			Query: `
				CREATE TABLE IF NOT EXISTS comments (
					id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					video_id UUID NOT NULL,
					owner_id UUID NOT NULL,
					content TEXT NOT NULL,
					created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
					updated_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
				);

				CREATE TABLE IF NOT EXISTS tweets (
					id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					owner_id UUID NOT NULL,
					content TEXT NOT NULL,
					created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
					updated_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
				);
			`,
		},
		{
			Version: "003_reactions",
			Query: `
				-- One reaction per (user, target); the unique index is what
				-- keeps concurrent toggles from producing duplicates
				CREATE TABLE IF NOT EXISTS reactions (
					id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					user_id UUID NOT NULL,
					target_kind VARCHAR(20) NOT NULL,
					target_id UUID NOT NULL,
					type VARCHAR(10) NOT NULL,
					created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
					updated_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
					UNIQUE(user_id, target_kind, target_id),
					CONSTRAINT reactions_target_kind_check CHECK (target_kind IN ('video', 'comment', 'tweet')),
					CONSTRAINT reactions_type_check CHECK (type IN ('like', 'dislike'))
				);
			`,
		},
		{
			Version: "004_subscriptions",
			Query: `
				CREATE TABLE IF NOT EXISTS subscriptions (
					id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					subscriber_id UUID NOT NULL,
					channel_id UUID NOT NULL,
					created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
					UNIQUE(subscriber_id, channel_id),
					CHECK(subscriber_id != channel_id)
				);
			`,
		},
		{
			Version: "005_playlists",
			Query: `
				CREATE TABLE IF NOT EXISTS playlists (
					id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					owner_id UUID NOT NULL,
					name VARCHAR(100) NOT NULL,
					description TEXT DEFAULT '',
					is_public BOOLEAN DEFAULT true,
					created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
					updated_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
				);

				CREATE UNIQUE INDEX IF NOT EXISTS idx_playlists_owner_name
					ON playlists(owner_id, lower(name));

				-- Membership order preserved by position
				CREATE TABLE IF NOT EXISTS playlist_videos (
					position BIGSERIAL PRIMARY KEY,
					playlist_id UUID NOT NULL,
					video_id UUID NOT NULL,
					added_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
					UNIQUE(playlist_id, video_id)
				);
			`,
		},
		{
			Version: "006_add_foreign_keys",
			Query: `
				DO $block1$
				BEGIN
					IF NOT EXISTS (SELECT 1 FROM information_schema.table_constraints
								  WHERE constraint_name = 'videos_owner_id_fkey'
								  AND table_name = 'videos') THEN
						ALTER TABLE videos ADD CONSTRAINT videos_owner_id_fkey
						FOREIGN KEY (owner_id) REFERENCES users(id) ON DELETE CASCADE;
					END IF;

					IF NOT EXISTS (SELECT 1 FROM information_schema.table_constraints
								  WHERE constraint_name = 'watch_history_user_id_fkey'
								  AND table_name = 'watch_history') THEN
						ALTER TABLE watch_history ADD CONSTRAINT watch_history_user_id_fkey
						FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE;
					END IF;

					IF NOT EXISTS (SELECT 1 FROM information_schema.table_constraints
								  WHERE constraint_name = 'watch_history_video_id_fkey'
								  AND table_name = 'watch_history') THEN
						ALTER TABLE watch_history ADD CONSTRAINT watch_history_video_id_fkey
						FOREIGN KEY (video_id) REFERENCES videos(id) ON DELETE CASCADE;
					END IF;

					IF NOT EXISTS (SELECT 1 FROM information_schema.table_constraints
								  WHERE constraint_name = 'comments_video_id_fkey'
								  AND table_name = 'comments') THEN
						ALTER TABLE comments ADD CONSTRAINT comments_video_id_fkey
						FOREIGN KEY (video_id) REFERENCES videos(id) ON DELETE CASCADE;
					END IF;

					IF NOT EXISTS (SELECT 1 FROM information_schema.table_constraints
								  WHERE constraint_name = 'comments_owner_id_fkey'
								  AND table_name = 'comments') THEN
						ALTER TABLE comments ADD CONSTRAINT comments_owner_id_fkey
						FOREIGN KEY (owner_id) REFERENCES users(id) ON DELETE CASCADE;
					END IF;

					IF NOT EXISTS (SELECT 1 FROM information_schema.table_constraints
								  WHERE constraint_name = 'tweets_owner_id_fkey'
								  AND table_name = 'tweets') THEN
						ALTER TABLE tweets ADD CONSTRAINT tweets_owner_id_fkey
						FOREIGN KEY (owner_id) REFERENCES users(id) ON DELETE CASCADE;
					END IF;

					IF NOT EXISTS (SELECT 1 FROM information_schema.table_constraints
								  WHERE constraint_name = 'reactions_user_id_fkey'
								  AND table_name = 'reactions') THEN
						ALTER TABLE reactions ADD CONSTRAINT reactions_user_id_fkey
						FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE;
					END IF;

					IF NOT EXISTS (SELECT 1 FROM information_schema.table_constraints
								  WHERE constraint_name = 'subscriptions_subscriber_id_fkey'
								  AND table_name = 'subscriptions') THEN
						ALTER TABLE subscriptions ADD CONSTRAINT subscriptions_subscriber_id_fkey
						FOREIGN KEY (subscriber_id) REFERENCES users(id) ON DELETE CASCADE;
					END IF;

					IF NOT EXISTS (SELECT 1 FROM information_schema.table_constraints
								  WHERE constraint_name = 'subscriptions_channel_id_fkey'
								  AND table_name = 'subscriptions') THEN
						ALTER TABLE subscriptions ADD CONSTRAINT subscriptions_channel_id_fkey
						FOREIGN KEY (channel_id) REFERENCES users(id) ON DELETE CASCADE;
					END IF;

					IF NOT EXISTS (SELECT 1 FROM information_schema.table_constraints
								  WHERE constraint_name = 'playlists_owner_id_fkey'
								  AND table_name = 'playlists') THEN
						ALTER TABLE playlists ADD CONSTRAINT playlists_owner_id_fkey
						FOREIGN KEY (owner_id) REFERENCES users(id) ON DELETE CASCADE;
					END IF;

					IF NOT EXISTS (SELECT 1 FROM information_schema.table_constraints
								  WHERE constraint_name = 'playlist_videos_playlist_id_fkey'
								  AND table_name = 'playlist_videos') THEN
						ALTER TABLE playlist_videos ADD CONSTRAINT playlist_videos_playlist_id_fkey
						FOREIGN KEY (playlist_id) REFERENCES playlists(id) ON DELETE CASCADE;
					END IF;

					IF NOT EXISTS (SELECT 1 FROM information_schema.table_constraints
								  WHERE constraint_name = 'playlist_videos_video_id_fkey'
								  AND table_name = 'playlist_videos') THEN
						ALTER TABLE playlist_videos ADD CONSTRAINT playlist_videos_video_id_fkey
						FOREIGN KEY (video_id) REFERENCES videos(id) ON DELETE CASCADE;
					END IF;
				END $block1$;
			`,
		},
		{
			Version: "007_create_indexes",
			Query: `
				CREATE INDEX IF NOT EXISTS idx_users_username ON users(username);
				CREATE INDEX IF NOT EXISTS idx_users_email ON users(email);

				CREATE INDEX IF NOT EXISTS idx_videos_owner_id ON videos(owner_id);
				CREATE INDEX IF NOT EXISTS idx_videos_created_at ON videos(created_at DESC);
				CREATE INDEX IF NOT EXISTS idx_videos_published_created ON videos(is_published, created_at DESC) WHERE is_published = true;
				CREATE INDEX IF NOT EXISTS idx_videos_views ON videos(views DESC);

				CREATE INDEX IF NOT EXISTS idx_watch_history_user ON watch_history(user_id, position DESC);

				CREATE INDEX IF NOT EXISTS idx_comments_video_created ON comments(video_id, created_at DESC);
				CREATE INDEX IF NOT EXISTS idx_comments_owner_id ON comments(owner_id);

				CREATE INDEX IF NOT EXISTS idx_tweets_owner_created ON tweets(owner_id, created_at DESC);

				CREATE INDEX IF NOT EXISTS idx_reactions_target ON reactions(target_kind, target_id, type);
				CREATE INDEX IF NOT EXISTS idx_reactions_user_id ON reactions(user_id);

				CREATE INDEX IF NOT EXISTS idx_subscriptions_channel ON subscriptions(channel_id, created_at DESC);
				CREATE INDEX IF NOT EXISTS idx_subscriptions_subscriber ON subscriptions(subscriber_id, created_at DESC);

				CREATE INDEX IF NOT EXISTS idx_playlists_owner ON playlists(owner_id, updated_at DESC);
				CREATE INDEX IF NOT EXISTS idx_playlist_videos_playlist ON playlist_videos(playlist_id, position);
			`,
		},
		{
			Version: "008_add_data_constraints",
			Query: `
				DO $block2$
				BEGIN
					IF NOT EXISTS (SELECT 1 FROM information_schema.table_constraints
								  WHERE constraint_name = 'videos_title_not_blank'
								  AND table_name = 'videos') THEN
						ALTER TABLE videos ADD CONSTRAINT videos_title_not_blank
						CHECK (length(trim(title)) > 0);
					END IF;

					IF NOT EXISTS (SELECT 1 FROM information_schema.table_constraints
								  WHERE constraint_name = 'comments_content_not_blank'
								  AND table_name = 'comments') THEN
						ALTER TABLE comments ADD CONSTRAINT comments_content_not_blank
						CHECK (length(trim(content)) > 0);
					END IF;

					IF NOT EXISTS (SELECT 1 FROM information_schema.table_constraints
								  WHERE constraint_name = 'tweets_content_not_blank'
								  AND table_name = 'tweets') THEN
						ALTER TABLE tweets ADD CONSTRAINT tweets_content_not_blank
						CHECK (length(trim(content)) > 0);
					END IF;

					IF NOT EXISTS (SELECT 1 FROM information_schema.table_constraints
								  WHERE constraint_name = 'videos_views_non_negative'
								  AND table_name = 'videos') THEN
						ALTER TABLE videos ADD CONSTRAINT videos_views_non_negative
						CHECK (views >= 0);
					END IF;
				END $block2$;
			`,
		},
	}

	for _, migration := range migrations {
		if err := applyMigration(db, migration); err != nil {
			return fmt.Errorf("failed to apply migration %s: %w", migration.Version, err)
		}
	}

	log.Println("✅ Video platform migrations completed successfully")
	return nil
}

type Migration struct {
	Version string
	Query   string
}

func applyMigration(db *sqlx.DB, migration Migration) error {
	// Check if migration already applied
	var count int
	err := db.QueryRow("SELECT COUNT(*) FROM migrations WHERE version = $1", migration.Version).Scan(&count)
	if err != nil {
		return fmt.Errorf("failed to check migration status: %w", err)
	}

	if count > 0 {
		log.Printf("⏭️  Migration %s already applied, skipping", migration.Version)
		return nil
	}

	log.Printf("🔧 Applying migration: %s", migration.Version)

	tx, err := db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(migration.Query)
	if err != nil {
		return fmt.Errorf("failed to execute migration %s: %w", migration.Version, err)
	}

	_, err = tx.Exec("INSERT INTO migrations (version) VALUES ($1)", migration.Version)
	if err != nil {
		return fmt.Errorf("failed to record migration %s: %w", migration.Version, err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit migration %s: %w", migration.Version, err)
	}

	log.Printf("✅ Migration %s applied successfully", migration.Version)
	return nil
}

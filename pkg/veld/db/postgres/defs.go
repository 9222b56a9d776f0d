package postgres

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/veldwork/veld/pkg/veld"
)

type PostgresVeldDatabaseInterface struct {
	config *veld.VeldConfig
	pool *pgxpool.Pool
}

func NewPostgresVeldDatabaseInterface(cfg *veld.VeldConfig) (*PostgresVeldDatabaseInterface, error) {
	u := &url.URL{
		Scheme: "postgres",
		User: url.UserPassword(cfg.Database.UserName, cfg.Database.Password),
		Host: cfg.Database.URL,
		Path: cfg.Database.DatabaseName,
	}
	pool, err := pgxpool.New(context.TODO(), u.String())
	if err != nil { return nil, err }
	return &PostgresVeldDatabaseInterface{
		config: cfg,
		pool: pool,
	}, nil
}

func (dbif *PostgresVeldDatabaseInterface) Dispose() error {
	dbif.pool.Close()
	return nil
}

var requiredTableList = []string{
	"account",
	"review",
	"review_message",
}

func (dbif *PostgresVeldDatabaseInterface) IsDatabaseUsable() (bool, error) {
	ctx := context.Background()
	queryStr := `
SELECT EXISTS (SELECT FROM pg_tables WHERE schemaname = 'public' AND tablename = $1)
`
	for _, item := range requiredTableList {
		tableName := fmt.Sprintf("%s_%s", dbif.config.Database.TablePrefix, item)
		stmt := dbif.pool.QueryRow(ctx, queryStr, tableName)
		var a bool
		err := stmt.Scan(&a)
		if errors.Is(err, pgx.ErrNoRows) { return false, nil }
		if err != nil { return false, err }
		if !a { return false, nil }
	}
	return true, nil
}

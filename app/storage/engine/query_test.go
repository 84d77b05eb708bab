package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryMap_Pick(t *testing.T) {
	qmap := NewQueryMap().
		Add(1, Query{
			Sqlite:   "SELECT name FROM approved_users WHERE id = ?",
			Postgres: "SELECT name FROM approved_users WHERE id = $1",
		}).
		Add(2, Query{
			Sqlite:   "INSERT INTO spam_counters (user_id) VALUES (?)",
			Postgres: "INSERT INTO spam_counters (user_id) VALUES ($1)",
		})

	tests := []struct {
		name    string
		dbType  Type
		cmd     DBCmd
		want    string
		wantErr bool
	}{
		{
			name:   "sqlite select",
			dbType: Sqlite,
			cmd:    1,
			want:   "SELECT name FROM approved_users WHERE id = ?",
		},
		{
			name:   "postgres select",
			dbType: Postgres,
			cmd:    1,
			want:   "SELECT name FROM approved_users WHERE id = $1",
		},
		{
			name:   "postgres insert",
			dbType: Postgres,
			cmd:    2,
			want:   "INSERT INTO spam_counters (user_id) VALUES ($1)",
		},
		{
			name:    "unknown db type",
			dbType:  Unknown,
			cmd:     1,
			wantErr: true,
		},
		{
			name:    "unknown command",
			dbType:  Sqlite,
			cmd:     99,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := qmap.Pick(tt.dbType, tt.cmd)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestQueryMap_AddSame(t *testing.T) {
	qmap := NewQueryMap().AddSame(1, "DELETE FROM spam_counters")

	sqliteQuery, err := qmap.Pick(Sqlite, 1)
	require.NoError(t, err)
	pgQuery, err := qmap.Pick(Postgres, 1)
	require.NoError(t, err)

	assert.Equal(t, "DELETE FROM spam_counters", sqliteQuery)
	assert.Equal(t, pgQuery, sqliteQuery)
}

func TestQueryMap_AddOverwrites(t *testing.T) {
	qmap := NewQueryMap().
		AddSame(1, "SELECT 1").
		Add(1, Query{Sqlite: "SELECT 2", Postgres: "SELECT 3"})

	query, err := qmap.Pick(Sqlite, 1)
	require.NoError(t, err)
	assert.Equal(t, "SELECT 2", query)

	query, err = qmap.Pick(Postgres, 1)
	require.NoError(t, err)
	assert.Equal(t, "SELECT 3", query)
}

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMustLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("CARD_STORE", "")
	t.Setenv("RUN_ADDRESS", "")

	cfg := MustLoad()

	assert.Equal(t, EnvLocal, cfg.Env)
	assert.Equal(t, ":8080", cfg.Server.RunAddress)
	assert.Equal(t, CardStorePostgres, cfg.DB.CardStore)
	assert.Equal(t, 400, cfg.Export.DesignWidth)
	assert.Equal(t, 4*time.Hour, cfg.Browser.RecycleInterval)
}

func TestMustLoad_FromEnv(t *testing.T) {
	t.Setenv("APP_ENV", EnvProd)
	t.Setenv("CARD_STORE", "Mongo")
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017/idcards")
	t.Setenv("CORS_ORIGINS", "http://localhost:3000, https://cards.example.org ,")
	t.Setenv("EXPORT_DESIGN_WIDTH", "420")

	cfg := MustLoad()

	assert.Equal(t, EnvProd, cfg.Env)
	assert.Equal(t, CardStoreMongo, cfg.DB.CardStore)
	assert.Equal(t, "mongodb://localhost:27017/idcards", cfg.DB.MongoURI)
	assert.Equal(t, []string{"http://localhost:3000", "https://cards.example.org"}, cfg.Server.CORSOrigins)
	assert.Equal(t, 420, cfg.Export.DesignWidth)
}

func TestSplitList(t *testing.T) {
	assert.Nil(t, splitList(""))
	assert.Nil(t, splitList("  "))
	assert.Equal(t, []string{"a", "b"}, splitList("a,,b"))
}

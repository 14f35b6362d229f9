package config

import (
	"os"
	"testing"
	"time"

	"shed-server/internal/util"

	"github.com/stretchr/testify/assert"
)

func TestInstance(t *testing.T) {
	clear1 := util.SetEnv("SHED_CONFIG_FILE", "testdata/config.yaml")
	defer clear1()
	clear2 := util.SetEnv("SHED_JWT_PRIVATE_KEY", "private2.key")
	defer clear2()
	clear3 := util.SetEnv("SHED_GAME_ILLEGAL_PLAY", "reject")
	defer clear3()

	config = Config{}

	a := assert.New(t)
	cfg := Instance()
	a.Equal("public.pem", cfg.JWT.PublicKey)
	a.Equal("private2.key", cfg.JWT.PrivateKey)
	a.Equal(StorageMemory, cfg.Storage)
	a.Equal("localhost:6379", cfg.Redis.Addr)
	a.Equal("shed.", cfg.Redis.ChannelPrefix)
	a.Equal(3, cfg.Game.MinPlayers)
	a.Equal(4, cfg.Game.MaxPlayers)
	a.Equal("low", cfg.Game.TwoRank)
	a.Equal("reject", cfg.Game.IllegalPlay)
	a.Equal("debug", cfg.Log.Level)

	// ensure that it's only loaded once
	_ = os.Setenv("SHED_JWT_PRIVATE_KEY", "private3.key")
	// ensure we aren't using a pointer
	cfg.JWT.PrivateKey = "bad"
	cfg = Instance()
	a.Equal("private2.key", cfg.JWT.PrivateKey)
}

func TestDefaults(t *testing.T) {
	clear := util.SetEnv("SHED_CONFIG_FILE", "testdata/does-not-exist.yaml")
	defer clear()

	assert.NoError(t, Load())
	cfg := Instance()
	assert.Equal(t, StoragePostgres, cfg.Storage)
	assert.Equal(t, "./sql", cfg.MigrationsPath)
	assert.Equal(t, time.Second, cfg.Game.BotDelayDuration())
	assert.Equal(t, time.Minute*5, cfg.Game.IdleTimeoutDuration())
	assert.Equal(t, "pickup", cfg.Game.IllegalPlay)
}

package server

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/pizzeria/config"
	"github.com/shashiranjanraj/pizzeria/pkg/lock"
	"github.com/shashiranjanraj/pizzeria/pkg/mail"
	"github.com/shashiranjanraj/pizzeria/pkg/payment"
	"github.com/shashiranjanraj/pizzeria/pkg/storage"
)

func TestLoadMenuFromPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "menu.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"code":7,"name":"Marinara","price":4.5}]`), 0o644))

	config.Set("MENU_PATH", path)
	defer config.Set("MENU_PATH", "")

	menu, err := loadMenu()
	require.NoError(t, err)
	item, ok := menu.Find(7)
	require.True(t, ok)
	assert.Equal(t, int64(450), item.Cents())
	assert.Len(t, menu.Items(), 1)
}

func TestLoadEmbeddedMenu(t *testing.T) {
	menu, err := loadMenu()
	require.NoError(t, err)
	assert.Len(t, menu.Items(), 6)
}

func TestLoadMenuRejectsBadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "menu.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"code":0,"name":"Nothing","price":1}]`), 0o644))

	config.Set("MENU_PATH", path)
	defer config.Set("MENU_PATH", "")

	_, err := loadMenu()
	assert.Error(t, err)
}

func TestWireRegistersRoutesAndSweeper(t *testing.T) {
	menu, err := loadMenu()
	require.NoError(t, err)

	app := Wire(Deps{
		Disk:     storage.NewLocalDisk(t.TempDir()),
		Locker:   lock.NewLocal(),
		Menu:     menu,
		Payments: &payment.Fake{},
		Mailer:   mail.NewLogMailer(mail.Sender{Address: "orders@pizzeria.test"}),
		Secret:   "test-secret",
	})

	_, ok := app.Router.Path("orders.store")
	assert.True(t, ok)
	_, ok = app.Router.Path("page.pizza.list")
	assert.True(t, ok)

	assert.Equal(t, []string{"tokens:sweep  [every 2h0m0s]"}, app.Scheduler().List())
}

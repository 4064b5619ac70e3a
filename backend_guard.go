package shapes

import (
	"fmt"
	"reflect"
)

// BackendTag marks that a painter backend has been installed into the App.
// Only one backend should be installed at a time.
type BackendTag struct {
	Name string
}

// ensureSingleBackend enforces a single painter backend invariant.
// If a different backend is already installed, it panics with a clear message.
func ensureSingleBackend(app *App, name string) {
	if app == nil {
		panic("ensureSingleBackend: app is nil")
	}
	t := reflect.TypeOf((*BackendTag)(nil)).Elem()
	if res, ok := app.resources[t]; ok {
		if tag, ok2 := res.(*BackendTag); ok2 {
			if tag.Name != name {
				// Also log via injected logger if present, then fail fast
				app.Logger().Errorf("Multiple painter backends installed: %s and %s", tag.Name, name)
				panic(fmt.Sprintf("Multiple painter backends installed: %s and %s", tag.Name, name))
			}
			return
		}
		// Unexpected type collision
		panic("BackendTag resource present with unexpected type")
	}
	app.addResources(&BackendTag{Name: name})
	app.Logger().Infof("Painter backend selected: %s", name)
}

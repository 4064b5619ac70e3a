package shapes

import (
	"testing"
)

func stageIndex(app *App, name string) int {
	for i, s := range app.stages {
		if s.Name == name {
			return i
		}
	}
	return -1
}

func TestApp_UseStage_InsertsBeforeAndAfter(t *testing.T) {
	app := NewAppBuilder().Build()

	app.UseStage(Stage{Name: "Warmup", UpdateType: DynamicUpdate}, BeforeStage(Update))
	app.UseStage(Stage{Name: "Cooldown", UpdateType: DynamicUpdate}, AfterStage(Update))

	update := stageIndex(app, "Update")
	if got := stageIndex(app, "Warmup"); got != update-1 {
		t.Errorf("Expected Warmup right before Update, got index %v vs %v", got, update)
	}
	if got := stageIndex(app, "Cooldown"); got != update+1 {
		t.Errorf("Expected Cooldown right after Update, got index %v vs %v", got, update)
	}
	if len(app.stages) != len(defaultStages)+2 {
		t.Errorf("Expected %v stages, got %v", len(defaultStages)+2, len(app.stages))
	}
}

func TestApp_UseStage_SystemsRunInStageOrder(t *testing.T) {
	app := NewAppBuilder().Build()
	app.UseStage(Stage{Name: "Warmup", UpdateType: DynamicUpdate}, BeforeStage(Update))

	var order []string
	app.UseSystem(
		System(func() { order = append(order, "update") }).
			InStage(Update).
			RunAlways(),
	)
	app.UseSystem(
		System(func() { order = append(order, "warmup") }).
			InStage(Stage{Name: "Warmup"}).
			RunAlways(),
	)

	app.callSystems(app.state, execute)

	if len(order) != 2 || order[0] != "warmup" || order[1] != "update" {
		t.Errorf("Expected [warmup update], got %v", order)
	}
}

func TestApp_UseStage_UnknownTarget(t *testing.T) {
	app := NewAppBuilder().Build()

	defer func() {
		if recover() == nil {
			t.Error("Expected a panic for an unknown anchor stage")
		}
	}()
	app.UseStage(Stage{Name: "Orphan"}, BeforeStage(Stage{Name: "NoSuchStage"}))
}

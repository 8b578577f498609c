package rebind

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/llehouerou/rebinder/internal/binding"
)

func TestGenerateElements(t *testing.T) {
	elements := GenerateElements(binding.DefaultAsset())

	ids := make([]string, 0, len(elements))
	for _, el := range elements {
		ids = append(ids, el.ID)
		assert.True(t, el.ClassAware)
	}
	assert.Equal(t, []string{
		"Gameplay/GameplayMove",
		"Gameplay/GameplayJump",
		"Gameplay/GameplayCrouch",
		"Gameplay/GameplayInteract",
		"Gameplay/GameplayFire",
		"Menu/MenuMove",
		"Menu/MenuSubmit",
		"Menu/MenuBack",
		"Menu/MenuInteract",
	}, ids)
}

func TestElement_DisplayName(t *testing.T) {
	tests := []struct {
		el   Element
		want string
	}{
		{Element{Action: "Gameplay/GameplayJump"}, "Jump"},
		{Element{Action: "Gameplay/Gameplay"}, "Gameplay"},
		{Element{Action: "Jump"}, "Jump"},
		{Element{Action: "Gameplay/GameplayJump", Label: "Hop"}, "Hop"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.el.DisplayName())
	}
}

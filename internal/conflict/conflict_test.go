package conflict

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/rebinder/internal/binding"
)

// rebind resolves, commits and applies the change the way the engine does.
func rebind(t *testing.T, a *binding.Action, index int, newPath string) Plan {
	t.Helper()
	prev := a.EffectivePath(index)
	p, err := Resolve(a, index, newPath, prev)
	require.NoError(t, err)
	require.NoError(t, p.Apply())
	require.NoError(t, a.ApplyOverride(index, newPath))
	return p
}

func assertNoDuplicates(t *testing.T, asset *binding.Asset) {
	t.Helper()
	for _, m := range asset.Maps() {
		seen := make(map[string]string)
		for _, a := range m.Actions() {
			for i := range a.Len() {
				path := a.EffectivePath(i)
				if path == "" {
					continue
				}
				where := fmt.Sprintf("%s[%d]", a, i)
				if first, dup := seen[path]; dup {
					t.Fatalf("map %s: %s and %s both resolve to %s", m.Name(), first, where, path)
				}
				seen[path] = where
			}
		}
	}
}

func TestResolve_SwapsIntoConflictingSlot(t *testing.T) {
	asset := binding.NewAsset("test")
	m := asset.AddMap("Gameplay")
	jump, err := m.AddAction("Jump", binding.Bind("<Keyboard>/space"))
	require.NoError(t, err)
	crouch, err := m.AddAction("Crouch", binding.Bind("<Keyboard>/ctrl"))
	require.NoError(t, err)
	fire, err := m.AddAction("Fire", binding.Bind("<Mouse>/leftButton"))
	require.NoError(t, err)

	p := rebind(t, crouch, 0, "<Keyboard>/space")

	require.Len(t, p.Changes(), 1)
	assert.Equal(t, SameMap, p.Changes()[0].Sweep)
	assert.Equal(t, "<Keyboard>/space", crouch.EffectivePath(0))
	assert.Equal(t, "<Keyboard>/ctrl", jump.EffectivePath(0))
	assert.Equal(t, "<Mouse>/leftButton", fire.EffectivePath(0))
	_, overridden := mustSlot(t, fire, 0).OverridePath()
	assert.False(t, overridden)
}

func TestResolve_NoConflict(t *testing.T) {
	asset := binding.DefaultAsset()
	jump := asset.FindAction("Gameplay/GameplayJump")

	p, err := Resolve(jump, 0, "<Keyboard>/j", "<Keyboard>/space")
	require.NoError(t, err)
	assert.True(t, p.Empty())
}

func TestResolve_EmptyAndUnchangedPaths(t *testing.T) {
	asset := binding.DefaultAsset()
	jump := asset.FindAction("Gameplay/GameplayJump")

	p, err := Resolve(jump, 0, "", "<Keyboard>/space")
	require.NoError(t, err)
	assert.True(t, p.Empty())

	p, err = Resolve(jump, 0, "<Keyboard>/space", "<Keyboard>/space")
	require.NoError(t, err)
	assert.True(t, p.Empty())
}

func TestResolve_Errors(t *testing.T) {
	_, err := Resolve(nil, 0, "<Keyboard>/x", "")
	assert.ErrorIs(t, err, binding.ErrUnresolvedAction)

	jump := binding.DefaultAsset().FindAction("GameplayJump")
	_, err = Resolve(jump, 7, "<Keyboard>/x", "")
	assert.ErrorIs(t, err, binding.ErrSlotOutOfRange)
}

func TestResolve_CompositePartsSwap(t *testing.T) {
	asset := binding.DefaultAsset()
	move := asset.FindAction("Gameplay/GameplayMove")
	menuMove := asset.FindAction("Menu/MenuMove")

	// Up takes Down's key: Down inherits the vacated key, in both maps.
	rebind(t, move, 1, "<Keyboard>/s")

	assert.Equal(t, "<Keyboard>/s", move.EffectivePath(1))
	assert.Equal(t, "<Keyboard>/w", move.EffectivePath(2))
	assert.Equal(t, "<Keyboard>/s", menuMove.EffectivePath(1))
	assert.Equal(t, "<Keyboard>/w", menuMove.EffectivePath(2))
	assertNoDuplicates(t, asset)
}

func TestResolve_MirrorsCompositeByIndex(t *testing.T) {
	asset := binding.DefaultAsset()
	move := asset.FindAction("Gameplay/GameplayMove")
	menuMove := asset.FindAction("Menu/MenuMove")

	p := rebind(t, move, 11, "<Gamepad>/leftStick/up")

	require.Len(t, p.Changes(), 1)
	c := p.Changes()[0]
	assert.Equal(t, Mirror, c.Sweep)
	assert.Same(t, menuMove, c.Action)
	assert.Equal(t, 11, c.Index)
	assert.Equal(t, "<Gamepad>/leftStick/up", menuMove.EffectivePath(11))
}

func TestResolve_MirrorsPlainAction(t *testing.T) {
	asset := binding.DefaultAsset()
	interact := asset.FindAction("Gameplay/GameplayInteract")
	menuInteract := asset.FindAction("Menu/MenuInteract")
	submit := asset.FindAction("Menu/MenuSubmit")

	rebind(t, interact, 0, "<Keyboard>/enter")

	assert.Equal(t, "<Keyboard>/enter", menuInteract.EffectivePath(0))
	assert.Equal(t, "<Keyboard>/e", submit.EffectivePath(0))
	assertNoDuplicates(t, asset)
}

func TestResolve_UnmatchedMapUntouched(t *testing.T) {
	asset := binding.DefaultAsset()
	jump := asset.FindAction("Gameplay/GameplayJump")
	submit := asset.FindAction("Menu/MenuSubmit")

	// Menu has no "Jump", so the mirror sweep leaves it alone.
	rebind(t, jump, 0, "<Keyboard>/enter")

	assert.Equal(t, "<Keyboard>/enter", jump.EffectivePath(0))
	assert.Equal(t, "<Keyboard>/enter", submit.EffectivePath(0))
}

// The mirror sweep only moves holders of the new path. When the mirror map
// already binds the previous path elsewhere, that map can end up with two
// holders of it; a rebind only guarantees uniqueness in its own map.
func TestResolve_MirrorMapNotCopyKeepsPreviousPathHolder(t *testing.T) {
	asset := binding.NewAsset("test")
	gameplay := asset.AddMap("Gameplay")
	jump, err := gameplay.AddAction("GameplayJump", binding.Bind("<Keyboard>/k0"))
	require.NoError(t, err)
	menu := asset.AddMap("Menu")
	menuJump, err := menu.AddAction("MenuJump", binding.Bind("<Keyboard>/k1"))
	require.NoError(t, err)
	menuFire, err := menu.AddAction("MenuFire", binding.Bind("<Keyboard>/k2"))
	require.NoError(t, err)
	menuOther, err := menu.AddAction("MenuOther", binding.Bind("<Keyboard>/k0"))
	require.NoError(t, err)

	p := rebind(t, jump, 0, "<Keyboard>/k2")

	require.Len(t, p.Changes(), 1)
	assert.Equal(t, Mirror, p.Changes()[0].Sweep)
	assert.Equal(t, "<Keyboard>/k2", jump.EffectivePath(0))
	assert.Equal(t, "<Keyboard>/k1", menuJump.EffectivePath(0))
	assert.Equal(t, "<Keyboard>/k0", menuFire.EffectivePath(0))
	assert.Equal(t, "<Keyboard>/k0", menuOther.EffectivePath(0))
}

func TestMirrorKey(t *testing.T) {
	asset := binding.DefaultAsset()
	assert.Equal(t, "Move", MirrorKey(asset.FindAction("Gameplay/GameplayMove")))
	assert.Equal(t, "Move", MirrorKey(asset.FindAction("Menu/MenuMove")))
}

func TestPlan_ApplyRollsBack(t *testing.T) {
	asset := binding.DefaultAsset()
	jump := asset.FindAction("Gameplay/GameplayJump")
	crouch := asset.FindAction("Gameplay/GameplayCrouch")
	require.NoError(t, crouch.ApplyOverride(0, "<Keyboard>/ctrl"))

	p := Plan{changes: []Change{
		{Action: jump, Index: 0, To: "<Keyboard>/x"},
		{Action: crouch, Index: 0, To: "<Keyboard>/y"},
		{Action: crouch, Index: 99, To: "<Keyboard>/z"},
	}}
	err := p.Apply()
	require.ErrorIs(t, err, ErrSwapFailure)
	assert.ErrorIs(t, err, binding.ErrSlotOutOfRange)

	assert.Equal(t, "<Keyboard>/space", jump.EffectivePath(0))
	_, overridden := mustSlot(t, jump, 0).OverridePath()
	assert.False(t, overridden)
	assert.Equal(t, "<Keyboard>/ctrl", crouch.EffectivePath(0))
}

func TestResolve_NoDuplicatesProperty(t *testing.T) {
	pool := make([]string, 0, 24)
	for i := range 12 {
		pool = append(pool, fmt.Sprintf("<Keyboard>/k%d", i), fmt.Sprintf("<Gamepad>/b%d", i))
	}

	for seed := range uint64(50) {
		rng := rand.New(rand.NewPCG(seed, seed*31+7))
		asset := randomMirroredAsset(t, rng, pool)
		assertNoDuplicates(t, asset)

		gameplay := asset.FindMap("Gameplay")
		for range 40 {
			actions := gameplay.Actions()
			a := actions[rng.IntN(len(actions))]
			index := rng.IntN(a.Len())
			if s := mustSlot(t, a, index); s.Composite {
				continue
			}
			rebind(t, a, index, pool[rng.IntN(len(pool))])
			assertNoDuplicates(t, asset)
		}
	}
}

// randomMirroredAsset builds two maps with identical bindings and a mix of
// plain and composite actions, all paths drawn without replacement.
func randomMirroredAsset(t *testing.T, rng *rand.Rand, pool []string) *binding.Asset {
	t.Helper()
	perm := rng.Perm(len(pool))
	next := func() string {
		p := pool[perm[0]]
		perm = perm[1:]
		return p
	}

	type def struct {
		name  string
		slots []binding.Slot
	}
	var defs []def
	defs = append(defs, def{"Move", []binding.Slot{
		binding.Composite("Dpad"),
		binding.PartSlot("up", next()),
		binding.PartSlot("down", next()),
		binding.PartSlot("left", next()),
		binding.PartSlot("right", next()),
	}})
	for i := range 2 + rng.IntN(3) {
		slots := make([]binding.Slot, 1+rng.IntN(2))
		for j := range slots {
			slots[j] = binding.Bind(next())
		}
		defs = append(defs, def{fmt.Sprintf("Act%d", i), slots})
	}

	asset := binding.NewAsset("prop")
	for _, mapName := range []string{"Gameplay", "Menu"} {
		m := asset.AddMap(mapName)
		for _, d := range defs {
			_, err := m.AddAction(mapName+d.name, d.slots...)
			require.NoError(t, err)
		}
	}
	return asset
}

func mustSlot(t *testing.T, a *binding.Action, i int) binding.Slot {
	t.Helper()
	s, err := a.Slot(i)
	require.NoError(t, err)
	return s
}

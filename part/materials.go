package part

import "github.com/soypat/pumpsdf/scene"

// Shared surface finishes. Wireframe is applied by the assembler.
var (
	stainless   = scene.Appearance{Color: 0xcccccc, Metalness: 0.9, Roughness: 0.2}
	polished    = scene.Appearance{Color: 0xcccccc, Metalness: 0.9, Roughness: 0.1}
	castSteel   = scene.Appearance{Color: 0x666666, Metalness: 0.5, Roughness: 0.5}
	bronze      = scene.Appearance{Color: 0x8b4513, Metalness: 0.8, Roughness: 0.3}
	drumBronze  = scene.Appearance{Color: 0xcd7f32, Metalness: 0.8, Roughness: 0.2}
	silver      = scene.Appearance{Color: 0xc0c0c0, Metalness: 0.9, Roughness: 0.1}
	guardSteel  = scene.Appearance{Color: 0xc0c0c0, Metalness: 0.8, Roughness: 0.2}
	fastener    = scene.Appearance{Color: 0x333333, Metalness: 0.9, Roughness: 0.1}
	nutSteel    = scene.Appearance{Color: 0xcccccc, Metalness: 0.9, Roughness: 0.2}
	threadSteel = scene.Appearance{Color: 0xaaaaaa, Metalness: 0.8, Roughness: 0.3}
	weld        = scene.Appearance{Color: 0xddddaa, Metalness: 0.8, Roughness: 0.2}
	frameSteel  = scene.Appearance{Color: 0x666666, Metalness: 0.7, Roughness: 0.3}
	padSteel    = scene.Appearance{Color: 0x888888, Metalness: 0.8, Roughness: 0.2}
	skidFrame   = scene.Appearance{Color: 0x666666, Metalness: 0.6, Roughness: 0.4}
	pipeSteel   = scene.Appearance{Color: 0xa0a0a0, Metalness: 0.7, Roughness: 0.3}
	feedSteel   = scene.Appearance{Color: 0xcccccc, Metalness: 0.8, Roughness: 0.2}

	// Seal cartridge materials.
	ss316     = scene.Appearance{Color: 0xaaaaaa, Metalness: 0.8, Roughness: 0.3}
	ceramic   = scene.Appearance{Color: 0xe0e0e0, Roughness: 0.1}
	carbon    = scene.Appearance{Color: 0x333333, Roughness: 0.2}
	elastomer = scene.Appearance{Color: 0x1a1a1a, Roughness: 0.8}
	springs   = scene.Appearance{Color: 0xb0b0b0, Metalness: 1, Roughness: 0.2}

	// bore marks the inner solid of a hollow part and cut features such
	// as perforations. It is drawn see-through and never meshed.
	bore = scene.Appearance{Color: 0x000000, Opacity: 0.1}
	// helper solids stay in the tree for placement but are never drawn.
	helper = scene.Appearance{Color: 0xffffff, Hidden: true}
	// assetWire is forced onto externally loaded bundles.
	assetWire = scene.Appearance{Color: 0xffffff, Wireframe: true}
)

// AssetAppearance returns the appearance forced onto external asset
// bundles.
func AssetAppearance() scene.Appearance { return assetWire }

package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ochairo/footprint/internal/domain/entities"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		path string
		want entities.FileCategory
	}{
		{"empty path", "", entities.FileOther},
		{"whitespace path", "   ", entities.FileOther},
		{"csharp script", "Assets/Game/Player.cs", entities.FileScripts},
		{"script inside streaming folder", "Assets/StreamingAssets/tools/patch.js", entities.FileStreamingAssets},
		{"script inside plugins folder", "Assets/Plugins/Editor/Helper.cs", entities.FilePlugins},
		{"resources folder", "Assets/Resources/Config/levels.json", entities.FileResources},
		{"scripts folder without extension", "Assets/Scripts/readme.txt", entities.FileScripts},
		{"shaders folder", "Assets/Shaders/water.png", entities.FileShaders},
		{"native plugin by extension", "Packages/com.vendor/Runtime/native.so", entities.FilePlugins},
		{"managed plugin by extension", "Library/Foo.dll", entities.FilePlugins},
		{"scene", "Assets/Scenes/Main.unity", entities.FileScenes},
		{"shader extension", "Assets/Art/Toon.shader", entities.FileShaders},
		{"shader graph", "Assets/Art/Lit.shadergraph", entities.FileShaders},
		{"texture falls to other", "Assets/Tex/hero.png", entities.FileOther},
		{"backslash separators", `Assets\StreamingAssets\movie.mp4`, entities.FileStreamingAssets},
		{"marker must be a whole segment", "Assets/MyResourcesPack/thing.png", entities.FileOther},
		{"case insensitive marker", "assets/streamingassets/a.bin", entities.FileStreamingAssets},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.path))
		})
	}
}

func TestClassifyAndroid(t *testing.T) {
	tests := []struct {
		path string
		want entities.FileCategory
	}{
		{"lib/arm64-v8a/libgame.so", entities.FilePlugins},
		{"lib/armeabi-v7a/libunity.so", entities.FilePlugins},
		{"classes.dex", entities.FileScripts},
		{"classes1.dex", entities.FileScripts},
		{"assets/bin/Data/resources.assets", entities.FileResources},
		{"assets/bin/Data/resources.assets.resS", entities.FileResources},
		{"assets/bin/Data/sharedassets0.assets", entities.FileScenes},
		{"assets/bin/Data/level1", entities.FileScenes},
		{"assets/bin/Data/maindata", entities.FileScenes},
		{"assets/bin/Data/unity_builtin_extra", entities.FileShaders},
		{"assets/bin/Data/globalgamemanagers", entities.FileOther},
		{"assets/bin/Data/Managed/Assembly-CSharp.dll", entities.FileScripts},
		{"assets/videos/intro.mp4", entities.FileStreamingAssets},
		{"assets/aa/Android/catalog.json", entities.FileStreamingAssets},
		{"res/drawable/icon.png", entities.FileOther},
		{"resources.arsc", entities.FileOther},
		{"AndroidManifest.xml", entities.FileOther},
		{"META-INF/CERT.RSA", entities.FileOther},
		// App bundle layout
		{"base/lib/arm64-v8a/libil2cpp.so", entities.FilePlugins},
		{"base/dex/classes.dex", entities.FileScripts},
		{"base/assets/bin/Data/data.unity3d", entities.FileOther},
		{"base/assets/movie.mp4", entities.FileStreamingAssets},
		// Exported Gradle project layout
		{"unityLibrary/src/main/jniLibs/arm64-v8a/libunity.so", entities.FilePlugins},
		{"unityLibrary/src/main/assets/bin/Data/sharedassets1.assets", entities.FileScenes},
		{"unityLibrary/libs/unity-classes.jar", entities.FileScripts},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyAndroid(tt.path))
		})
	}
}

func TestClassifyIOS(t *testing.T) {
	tests := []struct {
		path string
		want entities.FileCategory
	}{
		{"Payload/Game.app/Frameworks/UnityFramework.framework/UnityFramework", entities.FilePlugins},
		{"Payload/Game.app/libswiftCore.dylib", entities.FilePlugins},
		{"Payload/Game.app/Data/Raw/video.mp4", entities.FileStreamingAssets},
		{"Payload/Game.app/Data/Raw/levels/level1.bin", entities.FileStreamingAssets},
		{"Payload/Game.app/Data/sharedassets0.assets", entities.FileScenes},
		{"Payload/Game.app/Data/level0", entities.FileScenes},
		{"Payload/Game.app/Data/resources.assets", entities.FileResources},
		{"Payload/Game.app/Data/unity default resources", entities.FileOther},
		{"Payload/Game.app/Assets.car", entities.FileOther},
		{"Payload/Game.app/Game", entities.FileOther},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyIOS(tt.path))
		})
	}
}

func TestClassifyWebGL(t *testing.T) {
	tests := []struct {
		path string
		want entities.FileCategory
	}{
		{"Build/game.wasm", entities.FileScripts},
		{"Build/game.wasm.br", entities.FileScripts},
		{"Build/game.framework.js.gz", entities.FileScripts},
		{"Build/game.loader.js", entities.FileScripts},
		{"Build/game.data", entities.FileOther},
		{"Build/game.symbols.json", entities.FileOther},
		{"StreamingAssets/config.js", entities.FileStreamingAssets},
		{"index.html", entities.FileOther},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyWebGL(tt.path))
		})
	}
}

func TestClassifyStandalone(t *testing.T) {
	tests := []struct {
		path string
		want entities.FileCategory
	}{
		{"Managed/Assembly-CSharp.dll", entities.FileScripts},
		{"il2cpp_data/Metadata/global-metadata.dat", entities.FileScripts},
		{"Plugins/x86_64/steam_api64.dll", entities.FilePlugins},
		{"Plugins/libfmod.so", entities.FilePlugins},
		{"sharedassets0.assets", entities.FileScenes},
		{"level0", entities.FileScenes},
		{"resources.assets", entities.FileResources},
		{"resources.assets.resS", entities.FileResources},
		{"StreamingAssets/Managed/fake.dll", entities.FileStreamingAssets},
		{"globalgamemanagers", entities.FileOther},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyStandalone(tt.path))
		})
	}
}

func TestForPlatform(t *testing.T) {
	// Each platform must route a platform-specific path through its own rules.
	assert.Equal(t, entities.FileScripts, ForPlatform(entities.PlatformAndroid)("classes.dex"))
	assert.Equal(t, entities.FileStreamingAssets, ForPlatform(entities.PlatformIOS)("Data/Raw/a.bin"))
	assert.Equal(t, entities.FileScripts, ForPlatform(entities.PlatformWebGL)("Build/a.wasm"))
	assert.Equal(t, entities.FileScripts, ForPlatform(entities.PlatformWindows64)("Managed/A.dll"))
	assert.Equal(t, entities.FileScripts, ForPlatform(entities.PlatformLinux64)("Managed/A.dll"))
	assert.Equal(t, entities.FileOther, ForPlatform(entities.PlatformUnknown)("classes.dex"))
}

func TestClassify_Deterministic(t *testing.T) {
	paths := []string{
		"", "Assets/Tex/hero.png", "lib/arm64-v8a/libgame.so", "classes.dex",
		"Assets/StreamingAssets/a.cs", `C:\weird\path\file`, "no-extension",
	}
	for _, platform := range []entities.Platform{
		entities.PlatformAndroid, entities.PlatformIOS, entities.PlatformWebGL,
		entities.PlatformOSX, entities.PlatformUnknown,
	} {
		classify := ForPlatform(platform)
		for _, p := range paths {
			first := classify(p)
			for i := 0; i < 5; i++ {
				assert.Equal(t, first, classify(p), "platform %s path %q", platform, p)
			}
			assert.Contains(t, entities.FileCategories(), first)
		}
	}
}

func TestClassifyOther(t *testing.T) {
	tests := []struct {
		name     string
		platform entities.Platform
		path     string
		want     entities.OtherSubcategory
	}{
		{"empty", entities.PlatformAndroid, "", entities.OtherUnclassified},
		{"ios asset catalog", entities.PlatformIOS, "Payload/Game.app/Assets.car", entities.OtherIOSAssetCatalogs},
		{"ios nib", entities.PlatformIOS, "Payload/Game.app/LaunchScreen.nib", entities.OtherIOSAppResources},
		{"ios code signature", entities.PlatformIOS, "Payload/Game.app/_CodeSignature/CodeResources", entities.OtherIOSSystem},
		{"android addressables", entities.PlatformAndroid, "assets/aa/Android/ui.bundle", entities.OtherAndroidAddressables},
		{"android engine data", entities.PlatformAndroid, "assets/bin/Data/globalgamemanagers", entities.OtherAndroidEngineData},
		{"android resources", entities.PlatformAndroid, "res/drawable/icon.png", entities.OtherAndroidResources},
		{"android arsc", entities.PlatformAndroid, "resources.arsc", entities.OtherAndroidResources},
		{"android manifest", entities.PlatformAndroid, "AndroidManifest.xml", entities.OtherAndroidSystem},
		{"webgl data", entities.PlatformWebGL, "Build/game.data.br", entities.OtherWebGLData},
		{"sprite atlas", entities.PlatformOSX, "Assets/UI/Main.spriteatlas", entities.OtherSpriteAtlases},
		{"texture", entities.PlatformOSX, "Assets/Tex/hero.png", entities.OtherTextures},
		{"mesh", entities.PlatformUnknown, "Assets/Models/rock.mesh", entities.OtherMeshes},
		{"audio", entities.PlatformUnknown, "Assets/Sfx/jump.wav", entities.OtherAudio},
		{"bundle", entities.PlatformUnknown, "Bundles/ui.bundle", entities.OtherAssetBundles},
		{"engine runtime", entities.PlatformUnknown, "globalgamemanagers", entities.OtherEngineRuntime},
		{"font", entities.PlatformUnknown, "Assets/UI/Roboto.ttf", entities.OtherFonts},
		{"unknown", entities.PlatformUnknown, "README", entities.OtherUnclassified},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyOther(tt.platform, tt.path))
		})
	}
}

func TestClassifyAsset(t *testing.T) {
	tests := []struct {
		path string
		want entities.AssetCategory
	}{
		{"", entities.AssetOther},
		{"Assets/Tex/hero.png", entities.AssetTextures},
		{"Assets/Tex/sky.EXR", entities.AssetTextures},
		{"Assets/Audio/theme.ogg", entities.AssetAudio},
		{"Assets/Models/hero.fbx", entities.AssetModels},
		{"Assets/Anim/run.anim", entities.AssetAnimations},
		{"Assets/Anim/hero.controller", entities.AssetAnimations},
		{"Assets/Prefabs/enemy.prefab", entities.AssetPrefabs},
		{"Assets/Scenes/Main.unity", entities.AssetScenes},
		{"Assets/Scripts/Player.cs", entities.AssetScripts},
		{"Assets/Shaders/Water.hlsl", entities.AssetShaders},
		{"Assets/Materials/Rock.mat", entities.AssetMaterials},
		{"Assets/Fonts/Roboto.otf", entities.AssetFonts},
		{"Assets/TextMesh Pro/Fonts/Roboto SDF.asset", entities.AssetFonts},
		{"Assets/Data/items.asset", entities.AssetOther},
		{"Assets/Video/intro.mp4", entities.AssetVideos},
		{"Assets/Misc/notes", entities.AssetOther},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyAsset(tt.path))
		})
	}
}

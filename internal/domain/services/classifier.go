// Package services implements the pure domain logic of composition analysis.
package services

import (
	"strings"

	"github.com/ochairo/footprint/internal/domain/entities"
)

// FileClassifier maps a logical path to a file category. Implementations are total.
type FileClassifier func(path string) entities.FileCategory

// Classify assigns a file category to a path reported by build-tool metadata or a log.
// Location markers are checked before extensions.
func Classify(path string) entities.FileCategory {
	if strings.TrimSpace(path) == "" {
		return entities.FileOther
	}
	p := normalizePath(path)

	switch {
	case hasSegment(p, "streamingassets"):
		return entities.FileStreamingAssets
	case hasSegment(p, "plugins"):
		return entities.FilePlugins
	case hasSegment(p, "resources"):
		return entities.FileResources
	case hasSegment(p, "scripts"):
		return entities.FileScripts
	case hasSegment(p, "shaders"):
		return entities.FileShaders
	}

	switch {
	case hasAnySuffix(p, ".cs", ".js", ".boo"):
		return entities.FileScripts
	case hasAnySuffix(p, ".dll", ".so", ".bundle", ".dylib"):
		return entities.FilePlugins
	case strings.HasSuffix(p, ".unity"):
		return entities.FileScenes
	case hasAnySuffix(p, ".shader", ".cginc", ".hlsl", ".compute", ".shadergraph", ".shadersubgraph"):
		return entities.FileShaders
	}

	return entities.FileOther
}

// ForPlatform returns the classifier for paths found inside a platform's build output.
// Unknown platforms use Classify.
func ForPlatform(platform entities.Platform) FileClassifier {
	switch {
	case platform == entities.PlatformAndroid:
		return ClassifyAndroid
	case platform == entities.PlatformIOS:
		return ClassifyIOS
	case platform == entities.PlatformWebGL:
		return ClassifyWebGL
	case platform.IsStandalone():
		return ClassifyStandalone
	default:
		return Classify
	}
}

// androidRelative reduces APK, AAB and exported-project paths to APK layout:
// "base/dex/classes.dex" and "unityLibrary/src/main/jniLibs/x/y.so" become
// "classes.dex" and "lib/x/y.so".
func androidRelative(norm string) string {
	p := strings.TrimPrefix(norm, "/")
	if i := strings.Index(p, "src/main/"); i == 0 || (i > 0 && p[i-1] == '/') {
		p = p[i+len("src/main/"):]
	}
	p = strings.TrimPrefix(p, "base/")
	switch {
	case strings.HasPrefix(p, "dex/"):
		p = strings.TrimPrefix(p, "dex/")
	case strings.HasPrefix(p, "root/"):
		p = strings.TrimPrefix(p, "root/")
	case strings.HasPrefix(p, "jnilibs/"):
		p = "lib/" + strings.TrimPrefix(p, "jnilibs/")
	}
	return p
}

// ClassifyAndroid classifies an entry of an APK, an AAB or an exported Gradle project
func ClassifyAndroid(path string) entities.FileCategory {
	p := androidRelative(normalizePath(path))
	name := baseName(p)

	switch {
	case strings.HasPrefix(p, "lib/"):
		return entities.FilePlugins
	case strings.HasPrefix(p, "assets/bin/data/"):
		return classifyEngineData(p, name)
	case strings.HasPrefix(p, "assets/"):
		return entities.FileStreamingAssets
	case hasSegment("/"+p, "lib") || hasSegment("/"+p, "jnilibs"):
		return entities.FilePlugins
	case strings.HasPrefix(name, "classes") && strings.HasSuffix(name, ".dex"):
		return entities.FileScripts
	case hasAnySuffix(name, ".jar", ".aar"):
		return entities.FileScripts
	case strings.HasPrefix(p, "res/") || p == "resources.arsc":
		return entities.FileOther
	case strings.Contains(p, "shader"):
		return entities.FileShaders
	}
	return entities.FileOther
}

// classifyEngineData handles the packed engine data under assets/bin/Data
func classifyEngineData(p, name string) entities.FileCategory {
	switch {
	case hasSegment("/"+p, "managed"):
		return entities.FileScripts
	case strings.HasPrefix(name, "resources"):
		return entities.FileResources
	case strings.HasPrefix(name, "sharedassets") || strings.HasPrefix(name, "level") || name == "maindata":
		return entities.FileScenes
	case strings.Contains(p, "shader") || strings.Contains(p, "unity_builtin_extra"):
		return entities.FileShaders
	}
	return entities.FileOther
}

// ClassifyIOS classifies an entry of an IPA or a file of an .app bundle / Xcode export
func ClassifyIOS(path string) entities.FileCategory {
	p := normalizePath(path)
	name := baseName(p)

	switch {
	case strings.Contains(p, "/data/raw/"):
		return entities.FileStreamingAssets
	case hasSegment(p, "frameworks") || strings.Contains(p, ".framework/") ||
		hasAnySuffix(p, ".dylib", ".framework"):
		return entities.FilePlugins
	case hasSegment(p, "data") && (strings.Contains(name, "sharedassets") || strings.HasPrefix(name, "level")):
		return entities.FileScenes
	case hasSegment(p, "data") && (strings.HasPrefix(name, "resources") || strings.HasSuffix(name, ".resource")):
		return entities.FileResources
	case strings.Contains(p, "shader"):
		return entities.FileShaders
	}
	return entities.FileOther
}

// webCompressionSuffixes are stripped before WebGL extension checks
var webCompressionSuffixes = []string{".gz", ".br", ".unityweb"}

// ClassifyWebGL classifies a file of a WebGL output directory
func ClassifyWebGL(path string) entities.FileCategory {
	p := normalizePath(path)
	if hasSegment(p, "streamingassets") {
		return entities.FileStreamingAssets
	}

	for _, suffix := range webCompressionSuffixes {
		p = strings.TrimSuffix(p, suffix)
	}
	if hasAnySuffix(p, ".wasm", ".js") && !strings.HasSuffix(p, ".symbols.json") {
		return entities.FileScripts
	}
	return entities.FileOther
}

// ClassifyStandalone classifies a file relative to a desktop player's data directory
func ClassifyStandalone(path string) entities.FileCategory {
	p := normalizePath(path)
	name := baseName(p)

	switch {
	case hasSegment(p, "streamingassets"):
		return entities.FileStreamingAssets
	case hasSegment(p, "managed") && strings.HasSuffix(p, ".dll"):
		return entities.FileScripts
	case hasSegment(p, "il2cpp_data"):
		return entities.FileScripts
	case hasSegment(p, "plugins") || hasAnySuffix(p, ".dll", ".so", ".bundle", ".dylib"):
		return entities.FilePlugins
	case strings.HasPrefix(name, "sharedassets") || strings.HasPrefix(name, "level"):
		return entities.FileScenes
	case strings.HasPrefix(name, "resources") || hasAnySuffix(name, ".resource", ".ress"):
		return entities.FileResources
	case strings.Contains(p, "shader"):
		return entities.FileShaders
	}
	return entities.FileOther
}

// ClassifyOther refines an item of the Other bucket. Platform rules run before the
// cross-platform ones.
func ClassifyOther(platform entities.Platform, path string) entities.OtherSubcategory {
	if strings.TrimSpace(path) == "" {
		return entities.OtherUnclassified
	}
	p := normalizePath(path)

	switch platform {
	case entities.PlatformIOS:
		if sub, ok := classifyOtherIOS(p); ok {
			return sub
		}
	case entities.PlatformAndroid:
		if sub, ok := classifyOtherAndroid(p); ok {
			return sub
		}
	case entities.PlatformWebGL:
		if sub, ok := classifyOtherWebGL(p); ok {
			return sub
		}
	}

	switch {
	case hasAnySuffix(p, ".spriteatlas", ".spriteatlasv2"):
		return entities.OtherSpriteAtlases
	case hasAnySuffix(p, ".pvrtc", ".etc", ".etc2", ".astc", ".dds", ".ktx") ||
		containsAny(p, "texture", ".png", ".jpg"):
		return entities.OtherTextures
	case strings.Contains(p, "mesh"):
		return entities.OtherMeshes
	case hasAnySuffix(p, ".mp3", ".ogg", ".wav", ".m4a", ".aac"):
		return entities.OtherAudio
	case strings.HasSuffix(p, ".bundle") || strings.Contains(p, "assetbundle") || hasSegment(p, "aa"):
		return entities.OtherAssetBundles
	case containsAny(p, "sharedassets", "globalgamemanagers", "level") ||
		hasAnySuffix(p, ".resource", ".assets", ".ress"):
		return entities.OtherEngineRuntime
	case hasAnySuffix(p, ".ttf", ".otf") || strings.Contains(p, "font"):
		return entities.OtherFonts
	}
	return entities.OtherUnclassified
}

func classifyOtherIOS(p string) (entities.OtherSubcategory, bool) {
	switch {
	case strings.Contains(p, "assets.car"):
		return entities.OtherIOSAssetCatalogs, true
	case hasAnySuffix(p, ".storyboardc", ".nib", ".storyboard") || hasSegment(p, "base.lproj") ||
		(strings.Contains(p, ".app/") && hasAnySuffix(p, ".png", ".jpg")):
		return entities.OtherIOSAppResources, true
	case hasSegment(p, "frameworks") || strings.Contains(p, ".framework/") ||
		hasSegment(p, "swiftsupport") || hasSegment(p, "plugins") ||
		strings.Contains(p, "_codesignature/") || hasSegment(p, "meta-inf") ||
		strings.HasSuffix(p, ".dylib") || hasSegment(p, "extensions"):
		return entities.OtherIOSSystem, true
	}
	return 0, false
}

func classifyOtherAndroid(p string) (entities.OtherSubcategory, bool) {
	rel := "/" + androidRelative(p)
	switch {
	case strings.Contains(rel, "/assets/aa/") || (hasSegment(rel, "assets") && strings.HasSuffix(rel, ".bundle")):
		return entities.OtherAndroidAddressables, true
	case strings.Contains(rel, "/assets/bin/data/") || strings.Contains(rel, "sharedassets") ||
		strings.HasSuffix(rel, ".ress"):
		return entities.OtherAndroidEngineData, true
	case hasSegment(rel, "res") || strings.Contains(rel, "resources.arsc"):
		return entities.OtherAndroidResources, true
	case strings.Contains(rel, "classes") && strings.HasSuffix(rel, ".dex"):
		return entities.OtherAndroidCode, true
	case hasSegment(rel, "lib") || hasSegment(rel, "jnilibs") || strings.HasPrefix(rel, "/meta-inf/") ||
		strings.HasSuffix(rel, "androidmanifest.xml"):
		return entities.OtherAndroidSystem, true
	}
	return 0, false
}

func classifyOtherWebGL(p string) (entities.OtherSubcategory, bool) {
	for _, suffix := range webCompressionSuffixes {
		p = strings.TrimSuffix(p, suffix)
	}
	switch {
	case strings.HasSuffix(p, ".data"):
		return entities.OtherWebGLData, true
	case strings.HasSuffix(p, ".wasm"):
		return entities.OtherWebGLWasm, true
	case strings.HasSuffix(p, ".js"):
		return entities.OtherWebGLJS, true
	}
	return 0, false
}

// assetExtensions maps media extensions to asset categories
var assetExtensions = map[string]entities.AssetCategory{
	".png": entities.AssetTextures, ".jpg": entities.AssetTextures, ".jpeg": entities.AssetTextures,
	".tga": entities.AssetTextures, ".psd": entities.AssetTextures, ".tif": entities.AssetTextures,
	".tiff": entities.AssetTextures, ".gif": entities.AssetTextures, ".bmp": entities.AssetTextures,
	".exr": entities.AssetTextures, ".hdr": entities.AssetTextures,

	".mp3": entities.AssetAudio, ".wav": entities.AssetAudio, ".ogg": entities.AssetAudio,
	".aiff": entities.AssetAudio, ".aif": entities.AssetAudio, ".mod": entities.AssetAudio,
	".it": entities.AssetAudio, ".s3m": entities.AssetAudio, ".xm": entities.AssetAudio,

	".fbx": entities.AssetModels, ".dae": entities.AssetModels, ".3ds": entities.AssetModels,
	".dxf": entities.AssetModels, ".obj": entities.AssetModels, ".skp": entities.AssetModels,
	".blend": entities.AssetModels, ".mb": entities.AssetModels, ".ma": entities.AssetModels,

	".anim": entities.AssetAnimations, ".controller": entities.AssetAnimations,
	".overridecontroller": entities.AssetAnimations,

	".prefab": entities.AssetPrefabs,
	".unity":  entities.AssetScenes,

	".cs": entities.AssetScripts, ".js": entities.AssetScripts, ".boo": entities.AssetScripts,

	".shader": entities.AssetShaders, ".cginc": entities.AssetShaders, ".hlsl": entities.AssetShaders,
	".compute": entities.AssetShaders, ".shadergraph": entities.AssetShaders,
	".shadersubgraph": entities.AssetShaders,

	".mat": entities.AssetMaterials,

	".ttf": entities.AssetFonts, ".otf": entities.AssetFonts,

	".mp4": entities.AssetVideos, ".mov": entities.AssetVideos, ".avi": entities.AssetVideos,
	".webm": entities.AssetVideos, ".ogv": entities.AssetVideos,
}

// ClassifyAsset assigns a media category to a project-source path
func ClassifyAsset(path string) entities.AssetCategory {
	if strings.TrimSpace(path) == "" {
		return entities.AssetOther
	}
	p := normalizePath(path)
	name := baseName(p)

	ext := ""
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		ext = name[i:]
	}
	if c, ok := assetExtensions[ext]; ok {
		return c
	}
	// TextMesh Pro font assets
	if ext == ".asset" && strings.Contains(p, "textmesh") {
		return entities.AssetFonts
	}
	return entities.AssetOther
}

package pbxproj

import (
	"sort"

	"github.com/wordjournal/xcproj/internal/layout"
)

// sharedSettings apply to both project-level configurations.
var sharedSettings = map[string]Value{
	"ALWAYS_SEARCH_USER_PATHS":                                     str("NO"),
	"ASSETCATALOG_COMPILER_GENERATE_SWIFT_ASSET_SYMBOL_EXTENSIONS": str("YES"),
	"CLANG_ANALYZER_NONNULL":                                       str("YES"),
	"CLANG_ANALYZER_NUMBER_OBJECT_CONVERSION":                      str("YES_AGGRESSIVE"),
	"CLANG_CXX_LANGUAGE_STANDARD":                                  str("gnu++20"),
	"CLANG_ENABLE_MODULES":                                         str("YES"),
	"CLANG_ENABLE_OBJC_ARC":                                        str("YES"),
	"CLANG_ENABLE_OBJC_WEAK":                                       str("YES"),
	"CLANG_WARN_BLOCK_CAPTURE_AUTORELEASING":                       str("YES"),
	"CLANG_WARN_BOOL_CONVERSION":                                   str("YES"),
	"CLANG_WARN_COMMA":                                             str("YES"),
	"CLANG_WARN_CONSTANT_CONVERSION":                               str("YES"),
	"CLANG_WARN_DEPRECATED_OBJC_IMPLEMENTATIONS":                   str("YES"),
	"CLANG_WARN_DIRECT_OBJC_ISA_USAGE":                             str("YES_ERROR"),
	"CLANG_WARN_DOCUMENTATION_COMMENTS":                            str("YES"),
	"CLANG_WARN_EMPTY_BODY":                                        str("YES"),
	"CLANG_WARN_ENUM_CONVERSION":                                   str("YES"),
	"CLANG_WARN_INFINITE_RECURSION":                                str("YES"),
	"CLANG_WARN_INT_CONVERSION":                                    str("YES"),
	"CLANG_WARN_NON_LITERAL_NULL_CONVERSION":                       str("YES"),
	"CLANG_WARN_OBJC_IMPLICIT_RETAIN_SELF":                         str("YES"),
	"CLANG_WARN_OBJC_LITERAL_CONVERSION":                           str("YES"),
	"CLANG_WARN_OBJC_ROOT_CLASS":                                   str("YES_ERROR"),
	"CLANG_WARN_QUOTED_INCLUDE_IN_FRAMEWORK_HEADER":                str("YES"),
	"CLANG_WARN_RANGE_LOOP_ANALYSIS":                               str("YES"),
	"CLANG_WARN_STRICT_PROTOTYPES":                                 str("YES"),
	"CLANG_WARN_SUSPICIOUS_MOVE":                                   str("YES"),
	"CLANG_WARN_UNGUARDED_AVAILABILITY":                            str("YES_AGGRESSIVE"),
	"CLANG_WARN_UNREACHABLE_CODE":                                  str("YES"),
	"CLANG_WARN__DUPLICATE_METHOD_MATCH":                           str("YES"),
	"COPY_PHASE_STRIP":                                             str("NO"),
	"ENABLE_STRICT_OBJC_MSGSEND":                                   str("YES"),
	"ENABLE_USER_SCRIPT_SANDBOXING":                                str("YES"),
	"GCC_C_LANGUAGE_STANDARD":                                      str("gnu17"),
	"GCC_NO_COMMON_BLOCKS":                                         str("YES"),
	"GCC_WARN_64_TO_32_BIT_CONVERSION":                             str("YES"),
	"GCC_WARN_ABOUT_RETURN_TYPE":                                   str("YES_ERROR"),
	"GCC_WARN_UNDECLARED_SELECTOR":                                 str("YES"),
	"GCC_WARN_UNINITIALIZED_AUTOS":                                 str("YES_AGGRESSIVE"),
	"GCC_WARN_UNUSED_FUNCTION":                                     str("YES"),
	"GCC_WARN_UNUSED_VARIABLE":                                     str("YES"),
	"LOCALIZATION_PREFERS_STRING_CATALOGS":                         str("YES"),
	"MTL_FAST_MATH":                                                str("YES"),
	"SDKROOT":                                                      str("macosx"),
}

var debugSettings = map[string]Value{
	"DEBUG_INFORMATION_FORMAT":            str("dwarf"),
	"ENABLE_TESTABILITY":                  str("YES"),
	"GCC_DYNAMIC_NO_PIC":                  str("NO"),
	"GCC_OPTIMIZATION_LEVEL":              str("0"),
	"GCC_PREPROCESSOR_DEFINITIONS":        strs("DEBUG=1", "$(inherited)"),
	"MTL_ENABLE_DEBUG_INFO":               str("INCLUDE_SOURCE"),
	"ONLY_ACTIVE_ARCH":                    str("YES"),
	"SWIFT_ACTIVE_COMPILATION_CONDITIONS": str("DEBUG $(inherited)"),
	"SWIFT_OPTIMIZATION_LEVEL":            str("-Onone"),
}

var releaseSettings = map[string]Value{
	"DEBUG_INFORMATION_FORMAT": str("dwarf-with-dsym"),
	"ENABLE_NS_ASSERTIONS":     str("NO"),
	"MTL_ENABLE_DEBUG_INFO":    str("NO"),
	"SWIFT_COMPILATION_MODE":   str("wholemodule"),
	"SWIFT_OPTIMIZATION_LEVEL": str("-O"),
}

// projectSettings returns the compiler and warning settings for a
// project-level configuration.
func projectSettings(l *layout.Project, debug bool) Dict {
	m := make(map[string]Value, len(sharedSettings)+len(debugSettings))
	for k, v := range sharedSettings {
		m[k] = v
	}
	extra := releaseSettings
	if debug {
		extra = debugSettings
	}
	for k, v := range extra {
		m[k] = v
	}
	m["MACOSX_DEPLOYMENT_TARGET"] = str(l.DeploymentTarget)
	return sortedDict(m)
}

// targetSettings returns the product settings for a target-level
// configuration.
func targetSettings(l *layout.Project) Dict {
	m := map[string]Value{
		"ASSETCATALOG_COMPILER_APPICON_NAME":             str(""),
		"ASSETCATALOG_COMPILER_GLOBAL_ACCENT_COLOR_NAME": str(""),
		"CODE_SIGN_STYLE":                                str("Automatic"),
		"COMBINE_HIDPI_IMAGES":                           str("YES"),
		"CURRENT_PROJECT_VERSION":                        str(l.BuildNumber),
		"ENABLE_PREVIEWS":                                str("YES"),
		"INFOPLIST_KEY_NSHumanReadableCopyright":         str(""),
		"LD_RUNPATH_SEARCH_PATHS":                        strs("$(inherited)", "@executable_path/../Frameworks"),
		"MARKETING_VERSION":                              str(l.MarketingVersion),
		"PRODUCT_BUNDLE_IDENTIFIER":                      str(l.BundleID),
		"PRODUCT_NAME":                                   str("$(TARGET_NAME)"),
		"SWIFT_EMIT_LOC_STRINGS":                         str("YES"),
		"SWIFT_VERSION":                                  str(l.SwiftVersion),
	}
	if plist := l.InfoPlistPath(); plist != "" {
		m["GENERATE_INFOPLIST_FILE"] = str("NO")
		m["INFOPLIST_FILE"] = str(plist)
	} else {
		m["GENERATE_INFOPLIST_FILE"] = str("YES")
	}
	return sortedDict(m)
}

func sortedDict(m map[string]Value) Dict {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	d := make(Dict, 0, len(keys))
	for _, k := range keys {
		d = append(d, Field{Key: k, Value: m[k]})
	}
	return d
}

package classify

// Fixed name tables backing the library-layer heuristics. Detection is
// deliberately syntactic: a call merely named like a hook is classified as
// one, and a semantically similar custom helper that is not in these
// tables is not. No import or binding resolution happens here.

// namespaceName is the library namespace; a bare identifier with this
// exact text classifies as library layer.
const namespaceName = "React"

// markupNamespaceName qualifies markup-specific types (JSX.Element).
const markupNamespaceName = "JSX"

// elementFactoryName is the library's element-construction call.
const elementFactoryName = "createElement"

// hookNames are the library's built-in hooks.
var hookNames = map[string]struct{}{
	"useState":             {},
	"useEffect":            {},
	"useContext":           {},
	"useReducer":           {},
	"useCallback":          {},
	"useMemo":              {},
	"useRef":               {},
	"useImperativeHandle":  {},
	"useLayoutEffect":      {},
	"useInsertionEffect":   {},
	"useDebugValue":        {},
	"useDeferredValue":     {},
	"useTransition":        {},
	"useId":                {},
	"useSyncExternalStore": {},
	"useOptimistic":        {},
	"useActionState":       {},
}

// utilityNames are top-level library utility functions.
var utilityNames = map[string]struct{}{
	"memo":            {},
	"forwardRef":      {},
	"lazy":            {},
	"createContext":   {},
	"createRef":       {},
	"cloneElement":    {},
	"isValidElement":  {},
	"startTransition": {},
	"flushSync":       {},
	"createPortal":    {},
}

// reservedProps are attribute names reserved by the library rather than
// belonging to the markup vocabulary.
var reservedProps = map[string]struct{}{
	"key": {},
	"ref": {},
}

// libraryDirectives are directive-prologue strings reserved by the
// library. Language-reserved directives ("use strict") stay base layer.
var libraryDirectives = map[string]struct{}{
	"use client": {},
	"use server": {},
}

// trackedLibraryTypes are library-specific type names; type references and
// type-only import bindings with these names escalate to library layer.
var trackedLibraryTypes = map[string]struct{}{
	"ReactNode":         {},
	"ReactElement":      {},
	"ReactPortal":       {},
	"FC":                {},
	"FunctionComponent": {},
	"Component":         {},
	"PureComponent":     {},
	"ComponentProps":    {},
	"ComponentType":     {},
	"PropsWithChildren": {},
	"CSSProperties":     {},
	"Ref":               {},
	"RefObject":         {},
	"MutableRefObject":  {},
	"ForwardedRef":      {},
	"Dispatch":          {},
	"SetStateAction":    {},
	"Context":           {},
	"Fragment":          {},
	"Suspense":          {},
	"StrictMode":        {},
	"SyntheticEvent":    {},
	"ChangeEvent":       {},
	"MouseEvent":        {},
	"KeyboardEvent":     {},
	"FormEvent":         {},
}

func isHookName(name string) bool {
	_, ok := hookNames[name]

	return ok
}

func isUtilityName(name string) bool {
	_, ok := utilityNames[name]

	return ok
}

func isReservedProp(name string) bool {
	_, ok := reservedProps[name]

	return ok
}

func isLibraryDirective(text string) bool {
	_, ok := libraryDirectives[text]

	return ok
}

func isTrackedLibraryType(name string) bool {
	_, ok := trackedLibraryTypes[name]

	return ok
}

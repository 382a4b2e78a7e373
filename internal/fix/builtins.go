package fix

// builtinTypes are global types from lib.d.ts and common host typings that
// a rename must never shadow.
var builtinTypes = map[string]struct{}{}

func init() {
	for _, name := range []string{
		// primitive type names
		"any", "unknown", "never", "string", "number", "boolean", "bigint", "symbol", "object", "undefined",
		// ECMAScript
		"Object", "Function", "String", "Number", "Boolean", "Symbol", "BigInt",
		"Array", "ReadonlyArray", "ArrayLike", "Date", "RegExp", "Math", "JSON",
		"Error", "EvalError", "RangeError", "ReferenceError", "SyntaxError", "TypeError", "URIError", "AggregateError",
		"Promise", "PromiseLike", "Map", "Set", "WeakMap", "WeakSet", "WeakRef", "ReadonlyMap", "ReadonlySet",
		"Proxy", "Reflect", "Intl", "Atomics", "Iterator", "Iterable", "IterableIterator",
		"AsyncIterator", "AsyncIterable", "AsyncIterableIterator", "Generator", "AsyncGenerator",
		"ArrayBuffer", "SharedArrayBuffer", "DataView", "Int8Array", "Uint8Array", "Uint8ClampedArray",
		"Int16Array", "Uint16Array", "Int32Array", "Uint32Array", "Float32Array", "Float64Array",
		"BigInt64Array", "BigUint64Array", "TemplateStringsArray", "PropertyKey", "PropertyDescriptor",
		// utility types
		"Partial", "Required", "Readonly", "Record", "Pick", "Omit", "Exclude", "Extract",
		"NonNullable", "Parameters", "ConstructorParameters", "ReturnType", "InstanceType",
		"ThisParameterType", "OmitThisParameter", "ThisType", "Awaited",
		"Uppercase", "Lowercase", "Capitalize", "Uncapitalize", "NoInfer",
		// DOM and runtime hosts
		"Window", "Document", "Element", "HTMLElement", "Node", "Event", "EventTarget",
		"Request", "Response", "Headers", "URL", "URLSearchParams", "Blob", "File", "FormData",
		"AbortController", "AbortSignal", "Console", "Storage", "Location", "History", "Navigator",
		"Buffer", "NodeJS", "Global",
	} {
		builtinTypes[name] = struct{}{}
	}
}

// IsBuiltinType reports whether name is a well-known global type.
func IsBuiltinType(name string) bool {
	_, ok := builtinTypes[name]
	return ok
}

package cil

import "strings"

// SplitQualifiedName splits a fully-qualified member name into its owning
// type segment and its member segment.
//
// §9's open question notes the original implementation's
// GetTypeAndMemberName indexes Substring(typeStart, memberStart-typeStart),
// which as written includes the leading separator (a '.') in the returned
// type segment. This implementation trims that separator: the type
// segment never carries a leading '.', matching how internal/member's
// leading anchor treats the dot purely as a separator, not part of either
// name.
func SplitQualifiedName(fullyQualifiedName string) (typeName, memberName string) {
	name := fullyQualifiedName

	// Strip a leading return-type token, if present ("System.Void Foo::M()"
	// style signatures carry one; a bare "Foo::M" does not).
	if i := strings.IndexByte(name, ' '); i >= 0 {
		name = name[i+1:]
	}

	sep := strings.LastIndex(name, "::")
	if sep < 0 {
		sep = strings.LastIndex(name, ".")
	}
	if sep < 0 {
		return "", name
	}

	typeName = name[:sep]
	memberName = name[sep+len(separatorAt(name, sep)):]
	return typeName, memberName
}

func separatorAt(name string, index int) string {
	if index+1 < len(name) && name[index] == ':' && name[index+1] == ':' {
		return "::"
	}
	return "."
}

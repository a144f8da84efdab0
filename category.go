// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package objcrt

// Category is a compiler-emitted record that extends an existing class by
// name. Its instance methods extend the named class; its class methods
// extend that class's metaclass.
type Category struct {
	CategoryName    string
	TargetClassName string
	InstanceMethods *MethodList
	ClassMethods    *MethodList
	owner           string
}

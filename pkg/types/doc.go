// Package types defines the entity contract shared by packable items, the
// Instance capability, the Product entity, and the registry that maps kind
// discriminators back to concrete entity types.
//
// Entities export themselves as XML element nodes. The base node carries the
// entity's field set as attributes; kinded entities add a type attribute on
// top of it:
//
//	<instance name="Box-A" width="2" height="3" length="4" type="product"/>
package types

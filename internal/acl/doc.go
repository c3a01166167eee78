// Package acl implements access control entries of the services framework.
//
// An Entry grants or denies named permissions on an owned object to an owner,
// for example the group "42". The owner type and id form the ACL id
// "group_42" used to look the entry up again:
//
//	entries := acl.NewEntries(db)
//	e := entries.New()
//	e.SetDataAttributes(acl.EntryAttributes{OwnedID: &docID, OwnerType: &ownerType, OwnerID: &ownerID})
//	e.SetPermission("read", true)
//	err := e.Save(ctx)
//
//	e, err = entries.LoadACLID(ctx, "group_42")
//	if e.IsPermitted("read") {
//	    // ...
//	}
//
// Each Entry keeps a cache of its permissions by name. The cache is built on
// first use and belongs to that Entry value only.
package acl

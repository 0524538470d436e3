// Package network implements link inspection and configuration via rtnetlink.
//
// # Overview
//
// [Ops] is a stateless set of operations over a [Netlinker]. Lookups go by
// name, mutations go by kernel index, and nothing is cached between calls:
// every call reflects the kernel state at the moment it runs.
//
//   - [Ops.ResolveIndex]: name to index
//   - [Ops.ListLinks], [Ops.GetLinkInfo]: link snapshots as [LinkInfo]
//   - [Ops.SetLinkUp], [Ops.SetLinkDown], [Ops.SetLinkMTU]: single requests by index
//   - [Ops.AddAddress]: add an [IPNetwork] to a link
//   - [Ops.ListAddresses], [Ops.ListRoutes], [Ops.LinkStats]: read-only views
//
// Address removal is not implemented; [Ops.DeleteAddress] always fails with
// errors.ErrNotImplemented in its chain.
//
// # Transports
//
// [RealNetlinker] owns one rtnetlink socket, optionally inside a named
// network namespace. [DryRunNetlinker] records mutations as ip(8) commands.
// [MockNetlinker] is a testify mock.
//
// # Dependencies
//
// Uses github.com/vishvananda/netlink for all netlink operations and
// github.com/safchain/ethtool for driver details.
package network

// Package discovery runs the discovery of hosted caches across every
// subscription a delegated credential can see.
//
// # Run sequence
//
//  1. ListingSubscriptions: a failure here is fatal, the result is empty and
//     incomplete
//  2. For each subscription, in order: ListingSimple, ListingClustered, then
//     ListingDatabasesForCluster once per cluster, then SubscriptionDone
//  3. Done, or Failed when the subscription listing failed or the context was
//     cancelled
//
// # Error handling
//
// Failures inside one subscription or one cluster are absorbed: the branch is
// empty and the run stays complete. They are always logged and counted on
// Progress, which observers receive, and are listed on the result under
// PartialFailurePolicyReport.
//
// Progress can be pulled with Orchestrator.Progress or pushed to a
// ProgressObserver after every transition.
package discovery

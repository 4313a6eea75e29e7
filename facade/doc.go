/*
Package facade builds deprecated namespaces as verified re-export tables over a canonical
namespace.

A facade is described by a YAML manifest (see Spec). Loading it

 1. installs the manifest's deprecation filter unless the user already configured one for the
    namespace's module,
 2. issues the deprecation notice through a warnings.Registry,
 3. binds every export and child, or none of them.

Because the notice goes out before binding, a namespace that fails to build still warns, and a
notice escalated to an error keeps the namespace from loading at all.
*/
package facade
